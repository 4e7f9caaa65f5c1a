package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditEntry records one successful admin mutation.
type AuditEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Actor      string             `bson:"actor" json:"actor"`
	Action     string             `bson:"action" json:"action"`
	Resource   string             `bson:"resource" json:"resource"`
	ResourceID string             `bson:"resourceId,omitempty" json:"resourceId,omitempty"`
	RequestID  string             `bson:"requestId,omitempty" json:"requestId,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
