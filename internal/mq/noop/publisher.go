package noop

import (
	"context"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/mq"
)

// Publisher discards every message. Used when the service runs without a
// broker, such as local development or tests.
type Publisher struct{}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) Publish(ctx context.Context, topic string, body []byte) error {
	return nil
}

func (p *Publisher) Close() {}

var _ mq.Publisher = (*Publisher)(nil)
