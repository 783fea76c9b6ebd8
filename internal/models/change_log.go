package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChangeLogEntry records one field-level edit to a monthly record and its
// review status. Entries are immutable apart from the status/reviewed_by/
// reviewed_at triple; a re-edit after needs_revision creates a new entry
// rather than reopening the old one.
type ChangeLogEntry struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	MonthlyRecordID primitive.ObjectID  `bson:"monthly_record_id" json:"monthly_record_id"`
	FieldName       string              `bson:"field_name" json:"field_name"`
	OldValue        string              `bson:"old_value" json:"old_value"`
	NewValue        string              `bson:"new_value" json:"new_value"`
	Status          string              `bson:"status" json:"status"`
	ChangedBy       primitive.ObjectID  `bson:"changed_by" json:"changed_by"`
	ReviewedBy      *primitive.ObjectID `bson:"reviewed_by,omitempty" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time          `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	BatchSerial     uint64              `bson:"batch_serial" json:"batch_serial"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
}
