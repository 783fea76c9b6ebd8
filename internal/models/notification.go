package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is a message addressed to one user about a workflow event.
// Only the recipient may flip the read flag.
type Notification struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"user_id" json:"user_id"`
	Title           string              `bson:"title" json:"title"`
	Message         string              `bson:"message" json:"message"`
	Type            string              `bson:"type" json:"type"`
	Read            bool                `bson:"read" json:"read"`
	RelatedChangeID *primitive.ObjectID `bson:"related_change_id,omitempty" json:"related_change_id,omitempty"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
}
