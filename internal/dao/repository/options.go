package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/fields"
)

// UpdateOptions holds the $set fields for a MongoDB update operation, built
// with the Functional Options pattern.
type UpdateOptions struct {
	SetFields bson.M
}

// NewUpdateOptions creates a new instance of UpdateOptions.
func NewUpdateOptions() *UpdateOptions {
	return &UpdateOptions{
		SetFields: bson.M{},
	}
}

// UpdateOption defines a function that can modify the UpdateOptions.
type UpdateOption func(*UpdateOptions)

// WithUserEmail is an option to update the user's email field.
func WithUserEmail(email string) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldUserEmail] = email
	}
}

// WithUserFirstName is an option to update the user's first_name field.
func WithUserFirstName(name string) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldUserFirstName] = name
	}
}

// WithUserLastName is an option to update the user's last_name field.
func WithUserLastName(name string) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldUserLastName] = name
	}
}

// WithUserPasswordHash is an option to replace the user's password hash.
func WithUserPasswordHash(hash string) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldUserPasswordHash] = hash
	}
}

// WithUpdatedAt is an option to update the updated_at field.
func WithUpdatedAt(t time.Time) UpdateOption {
	return func(o *UpdateOptions) {
		o.SetFields[fields.FieldUpdatedAt] = t
	}
}
