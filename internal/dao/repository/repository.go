package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/models"
)

// MonthlyRecordsRepository is the persistence contract for monthly financial
// records. UpdateRecordFields is a compare-and-swap on the snapshot's
// updated_at: a concurrent edit invalidates the snapshot and the call fails
// with ErrStaleRecord so the engine can re-read and re-diff.
type MonthlyRecordsRepository interface {
	GetMonthlyRecord(ctx context.Context, id primitive.ObjectID) (*models.MonthlyRecord, error)
	UpdateRecordFields(ctx context.Context, params *UpdateRecordFieldsParams) error
	ListRecordsByMonth(ctx context.Context, params *ListRecordsParams) ([]*models.MonthlyRecord, int64, error)
	// CreateRecords inserts pending rows for month initialization. Rows that
	// collide with the (member_id, month) unique index are skipped; the count
	// of inserted rows is returned.
	CreateRecords(ctx context.Context, records []*models.MonthlyRecord) (int, error)
}

type ChangeLogsRepository interface {
	InsertChangeLogs(ctx context.Context, entries []*models.ChangeLogEntry) error
	GetChangeLogEntry(ctx context.Context, id primitive.ObjectID) (*models.ChangeLogEntry, error)
	// SetChangeLogStatus transitions an entry's status only when its current
	// status equals ExpectedStatus, returning the number of matched documents
	// so callers can distinguish a lost race from a missing entry.
	SetChangeLogStatus(ctx context.Context, params *SetChangeLogStatusParams) (int64, error)
	ListChangeLogs(ctx context.Context, params *ListChangeLogsParams) ([]*models.ChangeLogEntry, int64, error)
}

type CommentsRepository interface {
	InsertComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByChangeLog(ctx context.Context, changeLogID primitive.ObjectID) ([]*models.Comment, error)
}

// NotificationsRepository persists per-user workflow notifications.
// InsertNotifications is a best-effort batch: it returns the indexes of the
// documents that failed so the caller can report a degraded dispatch without
// rolling anything back.
type NotificationsRepository interface {
	InsertNotifications(ctx context.Context, notifications []*models.Notification) ([]int, error)
	GetNotification(ctx context.Context, id primitive.ObjectID) (*models.Notification, error)
	// SetNotificationRead flips the read flag only when the notification
	// belongs to userID; it returns the number of matched documents.
	SetNotificationRead(ctx context.Context, id, userID primitive.ObjectID) (int64, error)
	ListNotificationsByUser(ctx context.Context, params *ListNotificationsParams) ([]*models.Notification, error)
}

type MembersRepository interface {
	GetMember(ctx context.Context, id primitive.ObjectID) (*models.Member, error)
	ListMembers(ctx context.Context, params *ListMembersParams) ([]*models.Member, int64, error)
}

type UsersRepository interface {
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, opts ...UpdateOption) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	ListUsers(ctx context.Context) ([]*models.User, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, message *models.OutboxMessage) error
	ClaimAndFetchEvents(ctx context.Context, limit int) ([]*models.OutboxMessage, error)
	MarkAsProcessed(ctx context.Context, id primitive.ObjectID) error
	IncrementRetry(ctx context.Context, id primitive.ObjectID, errorMessage string) error
	ReleaseStaleClaims(ctx context.Context, olderThan time.Duration) (int64, error)
}
