package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/pagination"
)

// --- Parameter Structs ---

// UpdateRecordFieldsParams carries the write half of a submit-edit call.
// SnapshotUpdatedAt is the updated_at the diff was computed against; the DAO
// uses it as an optimistic lock.
type UpdateRecordFieldsParams struct {
	RecordID          primitive.ObjectID
	Amounts           map[string]primitive.Decimal128
	NewStatus         string
	SnapshotUpdatedAt time.Time
	NewUpdatedAt      time.Time
}

type SetChangeLogStatusParams struct {
	EntryID        primitive.ObjectID
	ExpectedStatus string
	NewStatus      string
	ReviewedBy     *primitive.ObjectID
	ReviewedAt     *time.Time
}

type ListChangeLogsParams struct {
	RecordID *primitive.ObjectID
	Status   string
	Page     *pagination.PageRequest
}

type ListRecordsParams struct {
	Month time.Time
	Page  *pagination.PageRequest
}

type ListMembersParams struct {
	Page *pagination.PageRequest
}

type ListNotificationsParams struct {
	UserID          primitive.ObjectID
	Limit           int64
	CursorCreatedAt time.Time
	CursorID        primitive.ObjectID
}
