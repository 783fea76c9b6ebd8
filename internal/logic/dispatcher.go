package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/mongodb"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/repository"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/models"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/pagination"
)

// NotificationDispatcher persists and serves per-user notifications. Delivery
// is best effort: a partially failed fan-out is reported in the DispatchResult
// and never rolls back the workflow write that triggered it.
type NotificationDispatcher interface {
	NotifyUsers(ctx context.Context, batch *NotificationBatch) (*DispatchResult, error)
	MarkRead(ctx context.Context, notificationID, caller primitive.ObjectID) error
	ListForUser(ctx context.Context, userID primitive.ObjectID, limit int64, token pagination.PageToken) (*NotificationPage, error)
}

// NotificationPage is one page of a user's feed, newest first. NextPageToken
// is empty on the last page.
type NotificationPage struct {
	Notifications []*models.Notification `json:"notifications"`
	NextPageToken pagination.PageToken   `json:"next_page_token,omitempty"`
}

var _ NotificationDispatcher = (*notificationDispatcher)(nil)

// DispatchResult reports the outcome of one fan-out batch.
type DispatchResult struct {
	Delivered []primitive.ObjectID
	Failed    []primitive.ObjectID
}

// Degraded reports whether any recipient was dropped.
func (r *DispatchResult) Degraded() bool {
	return len(r.Failed) > 0
}

type notificationDispatcher struct {
	notificationRepo repository.NotificationsRepository
	eventPublisher   *NotificationEventPublisher
	logger           *zap.Logger
}

func NewNotificationDispatcher(notificationRepo repository.NotificationsRepository, eventPublisher *NotificationEventPublisher, logger *zap.Logger) *notificationDispatcher {
	return &notificationDispatcher{
		notificationRepo: notificationRepo,
		eventPublisher:   eventPublisher,
		logger:           logger.Named("NotificationDispatcher"),
	}
}

func (d *notificationDispatcher) NotifyUsers(ctx context.Context, batch *NotificationBatch) (*DispatchResult, error) {
	if len(batch.Recipients) == 0 {
		return &DispatchResult{}, nil
	}

	now := time.Now()
	notifications := make([]*models.Notification, len(batch.Recipients))
	for i, userID := range batch.Recipients {
		notifications[i] = &models.Notification{
			ID:              primitive.NewObjectID(),
			UserID:          userID,
			Title:           batch.Title,
			Message:         batch.Message,
			Type:            batch.Type.String(),
			Read:            false,
			RelatedChangeID: batch.RelatedChangeID,
			CreatedAt:       now,
		}
	}

	failedIndexes, err := d.notificationRepo.InsertNotifications(ctx, notifications)
	if err != nil {
		return nil, fmt.Errorf("failed to insert notifications: %w", err)
	}

	failedSet := make(map[int]struct{}, len(failedIndexes))
	for _, idx := range failedIndexes {
		failedSet[idx] = struct{}{}
	}

	result := &DispatchResult{}
	for i, n := range notifications {
		if _, dropped := failedSet[i]; dropped {
			result.Failed = append(result.Failed, n.UserID)
			continue
		}
		result.Delivered = append(result.Delivered, n.UserID)

		if err := d.eventPublisher.PublishNotificationCreated(ctx, n); err != nil {
			d.logger.Error("NotifyUsers: failed to publish notification event",
				zap.Error(err), zap.Stringer("notificationID", n.ID))
		}
	}

	if result.Degraded() {
		d.logger.Error("NotifyUsers: dropped recipients",
			zap.Int("dropped", len(result.Failed)),
			zap.Int("total", len(batch.Recipients)),
			zap.String("title", batch.Title),
		)
	}

	return result, nil
}

func (d *notificationDispatcher) MarkRead(ctx context.Context, notificationID, caller primitive.ObjectID) error {
	matched, err := d.notificationRepo.SetNotificationRead(ctx, notificationID, caller)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if matched > 0 {
		return nil
	}

	// Zero matches is either a missing notification or someone else's.
	if _, err := d.notificationRepo.GetNotification(ctx, notificationID); err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to fetch notification: %w", err)
	}
	return ErrForbidden
}

func (d *notificationDispatcher) ListForUser(ctx context.Context, userID primitive.ObjectID, limit int64, token pagination.PageToken) (*NotificationPage, error) {
	if limit <= 0 {
		limit = pagination.DefaultPageSize
	}
	if limit > pagination.MaxPageSize {
		limit = pagination.MaxPageSize
	}

	params := &repository.ListNotificationsParams{
		UserID: userID,
		Limit:  limit,
	}

	cursor, err := token.Decode()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid page token", ErrValidation)
	}
	if cursor != nil {
		cursorID, err := primitive.ObjectIDFromHex(cursor.CursorID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid page token", ErrValidation)
		}
		params.CursorCreatedAt = time.Unix(cursor.CursorTimestamp, 0)
		params.CursorID = cursorID
	}

	notifications, err := d.notificationRepo.ListNotificationsByUser(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	page := &NotificationPage{Notifications: notifications}
	if int64(len(notifications)) == limit {
		last := notifications[len(notifications)-1]
		next, err := pagination.GenerateToken(last.ID, last.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to build page token: %w", err)
		}
		page.NextPageToken = next
	}
	return page, nil
}

var NotificationDispatcherProviderSet = wire.NewSet(
	NewNotificationDispatcher,
	NewNotificationEventPublisher,
	wire.Bind(new(NotificationDispatcher), new(*notificationDispatcher)),
)
