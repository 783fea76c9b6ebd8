package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/repository"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/models"
)

type NotificationEventsTopic string

// NotificationEventPublisher appends notification-created events to the outbox
// so the realtime pipeline can push them to connected clients. The append
// shares the request's storage context; the outbox worker does the publishing.
type NotificationEventPublisher struct {
	outboxRepo repository.OutboxRepository
	topic      NotificationEventsTopic
}

func NewNotificationEventPublisher(outboxRepo repository.OutboxRepository, topic NotificationEventsTopic) *NotificationEventPublisher {
	return &NotificationEventPublisher{
		outboxRepo: outboxRepo,
		topic:      topic,
	}
}

// NotificationCreatedEvent is the payload pushed through the MQ to the
// websocket notifier.
type NotificationCreatedEvent struct {
	NotificationID  string    `json:"notification_id"`
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	Message         string    `json:"message"`
	Type            string    `json:"type"`
	RelatedChangeID string    `json:"related_change_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// PublishNotificationCreated creates one outbox message for a persisted
// notification.
func (p *NotificationEventPublisher) PublishNotificationCreated(ctx context.Context, notification *models.Notification) error {
	event := NotificationCreatedEvent{
		NotificationID: notification.ID.Hex(),
		UserID:         notification.UserID.Hex(),
		Title:          notification.Title,
		Message:        notification.Message,
		Type:           notification.Type,
		CreatedAt:      notification.CreatedAt,
	}
	if notification.RelatedChangeID != nil {
		event.RelatedChangeID = notification.RelatedChangeID.Hex()
	}

	payloadBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event payload: %w", err)
	}

	outboxMsg := &models.OutboxMessage{
		ID:        primitive.NewObjectID(),
		Topic:     string(p.topic),
		Payload:   string(payloadBytes),
		Status:    models.OutboxStatusPending,
		CreatedAt: time.Now(),
	}

	if err := p.outboxRepo.Create(ctx, outboxMsg); err != nil {
		return fmt.Errorf("failed to create notification outbox message: %w", err)
	}
	return nil
}
