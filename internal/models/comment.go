package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is append-only admin feedback on a change-log entry.
type Comment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChangeLogID primitive.ObjectID `bson:"change_log_id" json:"change_log_id"`
	AuthorID    primitive.ObjectID `bson:"author_id" json:"author_id"`
	Content     string             `bson:"content" json:"content"`
	Scope       string             `bson:"scope" json:"scope"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
