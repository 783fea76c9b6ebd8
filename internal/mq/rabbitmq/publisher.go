package rabbitmq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/conf"
)

// Publisher sends messages to RabbitMQ over a single shared channel.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger
}

func NewPublisher(cfg *conf.RabbitMQConfig, logger *zap.Logger) (*Publisher, error) {
	namedLogger := logger.Named("RabbitMQPublisher")

	dsn := fmt.Sprintf("amqp://%s:%s@%s:%d/", cfg.User, cfg.Password, cfg.Host, cfg.Port)

	conn, err := amqp.Dial(dsn)
	if err != nil {
		namedLogger.Error("Failed to connect to RabbitMQ", zap.Error(err))
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		namedLogger.Error("Failed to open a channel", zap.Error(err))
		if connErr := conn.Close(); connErr != nil {
			namedLogger.Error("Failed to close connection after channel failure", zap.Error(connErr))
		}
		return nil, err
	}

	namedLogger.Info("Connected to RabbitMQ")

	return &Publisher{
		conn:    conn,
		channel: ch,
		logger:  namedLogger,
	}, nil
}

// Publish routes the message through the default exchange, so the topic is
// the destination queue name.
func (p *Publisher) Publish(ctx context.Context, topic string, body []byte) error {
	err := p.channel.PublishWithContext(ctx,
		"",    // exchange
		topic, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish a message", zap.Error(err), zap.String("topic", topic))
		return err
	}

	p.logger.Debug("Message published", zap.String("topic", topic), zap.ByteString("body", body))
	return nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.logger.Error("Failed to close channel", zap.Error(err))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			p.logger.Error("Failed to close connection", zap.Error(err))
		}
	}
}
