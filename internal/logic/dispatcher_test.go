package logic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/constants"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/mongodb"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/repository"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/models"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/pkg/pagination"
)

func newTestDispatcher() (*notificationDispatcher, *mockNotificationsRepository, *mockOutboxRepository) {
	notificationRepo := newMockNotificationsRepository()
	outboxRepo := newMockOutboxRepository()
	d := &notificationDispatcher{
		notificationRepo: notificationRepo,
		eventPublisher:   NewNotificationEventPublisher(outboxRepo, NotificationEventsTopic("notifications")),
		logger:           zap.NewNop(),
	}
	return d, notificationRepo, outboxRepo
}

func TestNotificationDispatcher_NotifyUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("empty batch is a no-op", func(t *testing.T) {
		d, notificationRepo, _ := newTestDispatcher()

		result, err := d.NotifyUsers(ctx, &NotificationBatch{Title: "Monthly Data Updated"})
		require.NoError(t, err)
		require.False(t, result.Degraded())
		require.Empty(t, result.Delivered)
		notificationRepo.AssertNotCalled(t, "InsertNotifications", mock.Anything, mock.Anything)
	})

	t.Run("full delivery publishes one event per notification", func(t *testing.T) {
		d, notificationRepo, outboxRepo := newTestDispatcher()
		userA := primitive.NewObjectID()
		userB := primitive.NewObjectID()

		notificationRepo.On("InsertNotifications", mock.Anything, mock.MatchedBy(func(ns []*models.Notification) bool {
			return len(ns) == 2 &&
				ns[0].UserID == userA && ns[1].UserID == userB &&
				!ns[0].Read && ns[0].Type == constants.NotificationTypeInfo.String()
		})).Return(nil, nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.MatchedBy(func(msg *models.OutboxMessage) bool {
			return msg.Topic == "notifications" && msg.Status == models.OutboxStatusPending
		})).Return(nil).Twice()

		result, err := d.NotifyUsers(ctx, &NotificationBatch{
			Recipients: []primitive.ObjectID{userA, userB},
			Title:      "Monthly Data Updated",
			Message:    "Finance user updated data for Abebe Kebede (1 field(s) changed)",
			Type:       constants.NotificationTypeInfo,
		})
		require.NoError(t, err)
		require.False(t, result.Degraded())
		require.Equal(t, []primitive.ObjectID{userA, userB}, result.Delivered)
		notificationRepo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
	})

	t.Run("partial failure reports dropped recipients and still delivers the rest", func(t *testing.T) {
		d, notificationRepo, outboxRepo := newTestDispatcher()
		userA := primitive.NewObjectID()
		userB := primitive.NewObjectID()
		userC := primitive.NewObjectID()

		notificationRepo.On("InsertNotifications", mock.Anything, mock.Anything).Return([]int{1}, nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()

		result, err := d.NotifyUsers(ctx, &NotificationBatch{
			Recipients: []primitive.ObjectID{userA, userB, userC},
			Title:      "Change Approved",
			Type:       constants.NotificationTypeSuccess,
		})
		require.NoError(t, err)
		require.True(t, result.Degraded())
		require.Equal(t, []primitive.ObjectID{userA, userC}, result.Delivered)
		require.Equal(t, []primitive.ObjectID{userB}, result.Failed)
	})

	t.Run("total insert failure is returned", func(t *testing.T) {
		d, notificationRepo, outboxRepo := newTestDispatcher()

		notificationRepo.On("InsertNotifications", mock.Anything, mock.Anything).
			Return(nil, errors.New("connection reset")).Once()

		_, err := d.NotifyUsers(ctx, &NotificationBatch{
			Recipients: []primitive.ObjectID{primitive.NewObjectID()},
			Title:      "Change Approved",
			Type:       constants.NotificationTypeSuccess,
		})
		require.Error(t, err)
		outboxRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("event publish failure does not fail the dispatch", func(t *testing.T) {
		d, notificationRepo, outboxRepo := newTestDispatcher()
		user := primitive.NewObjectID()

		notificationRepo.On("InsertNotifications", mock.Anything, mock.Anything).Return(nil, nil).Once()
		outboxRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("outbox unavailable")).Once()

		result, err := d.NotifyUsers(ctx, &NotificationBatch{
			Recipients: []primitive.ObjectID{user},
			Title:      "Comment on Your Change",
			Type:       constants.NotificationTypeWarning,
		})
		require.NoError(t, err)
		require.Equal(t, []primitive.ObjectID{user}, result.Delivered)
	})
}

func TestNotificationDispatcher_MarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("owner marks own notification", func(t *testing.T) {
		d, notificationRepo, _ := newTestDispatcher()
		notificationID := primitive.NewObjectID()
		caller := primitive.NewObjectID()

		notificationRepo.On("SetNotificationRead", mock.Anything, notificationID, caller).Return(int64(1), nil).Once()

		require.NoError(t, d.MarkRead(ctx, notificationID, caller))
		notificationRepo.AssertExpectations(t)
	})

	t.Run("missing notification returns ErrNotificationNotFound", func(t *testing.T) {
		d, notificationRepo, _ := newTestDispatcher()
		notificationID := primitive.NewObjectID()
		caller := primitive.NewObjectID()

		notificationRepo.On("SetNotificationRead", mock.Anything, notificationID, caller).Return(int64(0), nil).Once()
		notificationRepo.On("GetNotification", mock.Anything, notificationID).Return(nil, mongodb.ErrNotFound).Once()

		require.ErrorIs(t, d.MarkRead(ctx, notificationID, caller), ErrNotificationNotFound)
	})

	t.Run("someone else's notification returns ErrForbidden", func(t *testing.T) {
		d, notificationRepo, _ := newTestDispatcher()
		notificationID := primitive.NewObjectID()
		caller := primitive.NewObjectID()

		notificationRepo.On("SetNotificationRead", mock.Anything, notificationID, caller).Return(int64(0), nil).Once()
		notificationRepo.On("GetNotification", mock.Anything, notificationID).
			Return(&models.Notification{ID: notificationID, UserID: primitive.NewObjectID()}, nil).Once()

		require.ErrorIs(t, d.MarkRead(ctx, notificationID, caller), ErrForbidden)
	})
}

func TestNotificationDispatcher_ListForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("clamps the limit", func(t *testing.T) {
		d, notificationRepo, _ := newTestDispatcher()
		userID := primitive.NewObjectID()

		notificationRepo.On("ListNotificationsByUser", mock.Anything, mock.MatchedBy(func(p *repository.ListNotificationsParams) bool {
			return p.UserID == userID && p.Limit == int64(pagination.MaxPageSize)
		})).Return([]*models.Notification{}, nil).Once()

		_, err := d.ListForUser(ctx, userID, 10_000, "")
		require.NoError(t, err)
		notificationRepo.AssertExpectations(t)
	})

	t.Run("defaults a non-positive limit", func(t *testing.T) {
		d, notificationRepo, _ := newTestDispatcher()
		userID := primitive.NewObjectID()

		notificationRepo.On("ListNotificationsByUser", mock.Anything, mock.MatchedBy(func(p *repository.ListNotificationsParams) bool {
			return p.Limit == int64(pagination.DefaultPageSize)
		})).Return([]*models.Notification{}, nil).Once()

		page, err := d.ListForUser(ctx, userID, 0, "")
		require.NoError(t, err)
		require.Empty(t, page.NextPageToken)
	})

	t.Run("full page returns a resumable token", func(t *testing.T) {
		d, notificationRepo, _ := newTestDispatcher()
		userID := primitive.NewObjectID()
		now := time.Now().Truncate(time.Second)
		notifications := []*models.Notification{
			{ID: primitive.NewObjectID(), UserID: userID, CreatedAt: now},
			{ID: primitive.NewObjectID(), UserID: userID, CreatedAt: now.Add(-time.Minute)},
		}
		last := notifications[1]

		notificationRepo.On("ListNotificationsByUser", mock.Anything, mock.MatchedBy(func(p *repository.ListNotificationsParams) bool {
			return p.Limit == 2 && p.CursorCreatedAt.IsZero()
		})).Return(notifications, nil).Once()

		page, err := d.ListForUser(ctx, userID, 2, "")
		require.NoError(t, err)
		require.NotEmpty(t, page.NextPageToken)

		notificationRepo.On("ListNotificationsByUser", mock.Anything, mock.MatchedBy(func(p *repository.ListNotificationsParams) bool {
			return p.CursorID == last.ID && p.CursorCreatedAt.Equal(last.CreatedAt)
		})).Return([]*models.Notification{}, nil).Once()

		next, err := d.ListForUser(ctx, userID, 2, page.NextPageToken)
		require.NoError(t, err)
		require.Empty(t, next.NextPageToken)
		notificationRepo.AssertExpectations(t)
	})

	t.Run("garbage token is a validation error", func(t *testing.T) {
		d, notificationRepo, _ := newTestDispatcher()

		_, err := d.ListForUser(ctx, primitive.NewObjectID(), 10, "not-base64!")
		require.ErrorIs(t, err, ErrValidation)
		notificationRepo.AssertNotCalled(t, "ListNotificationsByUser", mock.Anything, mock.Anything)
	})
}
