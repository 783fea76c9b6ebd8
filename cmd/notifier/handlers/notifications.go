package handlers

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/conf"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/logic"
)

// Pusher delivers a payload to a user's live websocket sessions.
type Pusher interface {
	Push(userID string, payload []byte) error
}

// NotificationEventHandler forwards notification-created events from the
// broker to the websocket hub.
type NotificationEventHandler struct {
	pusher Pusher
	cfg    *conf.RabbitMQConfig
	logger *zap.Logger
}

func NewNotificationEventHandler(pusher Pusher, cfg *conf.RabbitMQConfig, logger *zap.Logger) *NotificationEventHandler {
	return &NotificationEventHandler{
		pusher: pusher,
		cfg:    cfg,
		logger: logger.Named("NotificationEventHandler"),
	}
}

func (h *NotificationEventHandler) QueueName() string {
	return h.cfg.NotificationEventsTopic
}

// Handle pushes the event to the recipient's sessions. Malformed payloads are
// acked and dropped; they would fail identically on every redelivery.
func (h *NotificationEventHandler) Handle(ctx context.Context, d amqp.Delivery) error {
	var event logic.NotificationCreatedEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		h.logger.Error("Failed to unmarshal notification event", zap.Error(err), zap.ByteString("body", d.Body))
		return nil
	}
	if event.UserID == "" {
		h.logger.Error("Notification event without user id", zap.ByteString("body", d.Body))
		return nil
	}

	if err := h.pusher.Push(event.UserID, d.Body); err != nil {
		h.logger.Error("Failed to push notification", zap.String("user_id", event.UserID), zap.Error(err))
		return err
	}

	h.logger.Debug("Notification pushed", zap.String("user_id", event.UserID), zap.String("notification_id", event.NotificationID))
	return nil
}

var _ MessageHandler = (*NotificationEventHandler)(nil)
