package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/foodhub/backend/internal/domain/shared"
	"github.com/foodhub/backend/internal/infrastructure/config"
	"github.com/foodhub/backend/internal/infrastructure/event"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

func (c *fakeChannel) Close() error { return nil }

type orderEvent struct {
	shared.BaseDomainEvent
	Total string `json:"total"`
}

func TestKafkaPublisher(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	require.NoError(t, p.Publish(context.Background(), "order-1", "OrderPlaced", []byte(`{}`)))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "order-1", string(w.msgs[0].Key))
	assert.Equal(t, "event-type", w.msgs[0].Headers[0].Key)
	assert.Equal(t, "OrderPlaced", string(w.msgs[0].Headers[0].Value))

	w.err = errors.New("leader not available")
	assert.ErrorContains(t, p.Publish(context.Background(), "order-1", "OrderPlaced", nil), "leader not available")

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestRabbitMQPublisher(t *testing.T) {
	ch := &fakeChannel{}
	acks := make(chan amqp.Confirmation, 1)
	p := &RabbitMQPublisher{ch: ch, exchange: "foodhub.events", acks: acks}

	acks <- amqp.Confirmation{DeliveryTag: 1, Ack: true}
	require.NoError(t, p.Publish(context.Background(), "order-1", "OrderStatusChanged", []byte(`{}`)))
	assert.Equal(t, "foodhub.events", ch.exchange)
	assert.Equal(t, "OrderStatusChanged", ch.key)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "order-1", ch.msg.MessageId)

	acks <- amqp.Confirmation{DeliveryTag: 2, Ack: false}
	assert.Error(t, p.Publish(context.Background(), "order-1", "OrderStatusChanged", nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, "order-1", "OrderStatusChanged", nil), context.Canceled)
}

func TestForwarder(t *testing.T) {
	w := &fakeWriter{}
	f := NewForwarder(&KafkaPublisher{writer: w})
	assert.Nil(t, f.EventTypes())

	e := &orderEvent{BaseDomainEvent: shared.NewBaseDomainEvent("OrderPlaced", "Order", "order-9"), Total: "24.97"}
	require.NoError(t, f.Handle(context.Background(), e))

	require.Len(t, w.msgs, 1)
	env, err := event.Decode(w.msgs[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "OrderPlaced", env.Type)
	assert.Equal(t, "order-9", env.AggregateID)
	assert.Contains(t, string(env.Payload), `"total":"24.97"`)
}

func TestNewPublisher(t *testing.T) {
	p, err := NewPublisher(config.MessagingConfig{Driver: config.MessagingDriverNone}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewPublisher(config.MessagingConfig{
		Driver:       config.MessagingDriverKafka,
		KafkaBrokers: []string{"localhost:9092"},
		KafkaTopic:   "foodhub.events",
	}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &KafkaPublisher{}, p)

	_, err = NewPublisher(config.MessagingConfig{Driver: "carrier-pigeon"}, zap.NewNop())
	assert.Error(t, err)
}
