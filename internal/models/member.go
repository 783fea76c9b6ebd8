package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is a cooperative member directory entry.
type Member struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	EmployeeID    string              `bson:"employee_id" json:"employee_id"`
	FirstName     string              `bson:"first_name" json:"first_name"`
	LastName      string              `bson:"last_name" json:"last_name"`
	CollegeID     *primitive.ObjectID `bson:"college_id,omitempty" json:"college_id,omitempty"`
	InstitutionID *primitive.ObjectID `bson:"institution_id,omitempty" json:"institution_id,omitempty"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}

// FullName joins the member's names for display in notification messages.
func (m *Member) FullName() string {
	if m.FirstName == "" {
		return m.LastName
	}
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}
