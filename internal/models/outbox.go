package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OutboxStatusPending    = "PENDING"
	OutboxStatusProcessing = "PROCESSING"
	OutboxStatusProcessed  = "PROCESSED"
	OutboxStatusFailed     = "FAILED"
)

// OutboxMessage is one workflow event awaiting publication to the message
// queue. The dispatcher appends these in the same store as the notifications
// they describe; the outbox worker drains them.
type OutboxMessage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Topic       string             `bson:"topic"`
	Payload     string             `bson:"payload"` // JSON-encoded event
	Status      string             `bson:"status"`
	Retries     int                `bson:"retries"`
	ClaimID     primitive.ObjectID `bson:"claim_id,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   *time.Time         `bson:"updated_at,omitempty"`
	ProcessedAt *time.Time         `bson:"processed_at,omitempty"`
	Error       string             `bson:"error,omitempty"`
}
