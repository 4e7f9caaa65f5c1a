// Package audit keeps a trail of successful admin mutations.
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"lenzooadmin/internal/models"
)

const writeTimeout = 3 * time.Second

// Recorder stores audit entries. Record never fails the caller; problems
// are logged.
type Recorder interface {
	Record(ctx context.Context, entry models.AuditEntry)
	Recent(ctx context.Context, limit int) ([]models.AuditEntry, error)
	Enabled() bool
}

type Nop struct{}

func (Nop) Record(context.Context, models.AuditEntry) {}

func (Nop) Recent(context.Context, int) ([]models.AuditEntry, error) {
	return nil, nil
}

func (Nop) Enabled() bool { return false }

type collection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

type MongoRecorder struct {
	coll collection
	log  *zap.Logger
	now  func() time.Time
}

func NewMongoRecorder(coll *mongo.Collection, log *zap.Logger) *MongoRecorder {
	return newMongoRecorder(coll, log)
}

func newMongoRecorder(coll collection, log *zap.Logger) *MongoRecorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &MongoRecorder{coll: coll, log: log, now: time.Now}
}

func (r *MongoRecorder) Enabled() bool { return true }

func (r *MongoRecorder) Record(ctx context.Context, entry models.AuditEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.now().UTC()
	}
	// the request may already be finishing; the write gets its own deadline
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		r.log.Warn("audit: insert failed",
			zap.String("action", entry.Action),
			zap.String("resource", entry.Resource),
			zap.String("resourceId", entry.ResourceID),
			zap.Error(err),
		)
	}
}

// Recent returns the newest entries first.
func (r *MongoRecorder) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make([]models.AuditEntry, 0, limit)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
