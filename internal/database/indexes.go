package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const AuditCollection = "audit_log"

// AuditIndexes are the indexes the audit screen queries by.
func AuditIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt_desc"),
		},
		{
			Keys:    bson.D{{Key: "resource", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("resource_createdAt"),
		},
	}
}

func EnsureAuditIndexes(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	indexes := db.Collection(AuditCollection).Indexes()

	log.Info("EnsureAuditIndexes: creating indexes", zap.String("collection", AuditCollection))
	names, err := indexes.CreateMany(ctx, AuditIndexes())
	if err != nil {
		log.Warn("EnsureAuditIndexes: index error", zap.Error(err))
		return err
	}
	log.Info("EnsureAuditIndexes: indexes created", zap.Strings("names", names))
	return nil
}
