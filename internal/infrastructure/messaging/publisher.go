// Package messaging forwards domain events to an external broker.
package messaging

import (
	"context"
	"fmt"

	"github.com/foodhub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Publisher sends one encoded event to a broker. key partitions or routes
// the message; body is the JSON envelope.
type Publisher interface {
	Publish(ctx context.Context, key, routingKey string, body []byte) error
	Close() error
}

// NewPublisher builds the publisher selected by messaging.driver. It returns
// nil for the none driver.
func NewPublisher(cfg config.MessagingConfig, logger *zap.Logger) (Publisher, error) {
	switch cfg.Driver {
	case "", config.MessagingDriverNone:
		return nil, nil
	case config.MessagingDriverKafka:
		logger.Info("forwarding domain events to Kafka",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic),
		)
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case config.MessagingDriverRabbitMQ:
		logger.Info("forwarding domain events to RabbitMQ", zap.String("exchange", cfg.RabbitMQExchange))
		return DialRabbitMQ(cfg.RabbitMQURL, cfg.RabbitMQExchange)
	default:
		return nil, fmt.Errorf("unknown messaging driver %q", cfg.Driver)
	}
}
