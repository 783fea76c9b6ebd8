package handlers

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler is a queue subscription: a queue name plus the function that
// processes its deliveries.
type MessageHandler interface {
	QueueName() string
	Handle(ctx context.Context, d amqp.Delivery) error
}
