package mq

import "context"

// Publisher abstracts the message broker so transports can be swapped
// (RabbitMQ in deployments, a no-op for single-binary development).
type Publisher interface {
	Publish(ctx context.Context, topic string, body []byte) error
	Close()
}
