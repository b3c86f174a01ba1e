// Package kafka implements the OrderEventPublisher port with a sarama sync
// producer. Events are emitted best-effort after the owning transaction
// commits; a failed publish is logged by the caller and never undone.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderChangedEvent is the wire format of an order lifecycle notification.
type OrderChangedEvent struct {
	EventID    string     `json:"event_id"`
	OrderID    string     `json:"order_id"`
	Status     string     `json:"status"`
	CourierID  *string    `json:"courier_id,omitempty"`
	Price      string     `json:"price"`
	OccurredAt time.Time  `json:"occurred_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}

// OrderProducer publishes order lifecycle events to a Kafka topic.
type OrderProducer struct {
	producer sarama.SyncProducer
	topic    string
	log      zerolog.Logger
}

// NewOrderProducer creates a sync producer for the order-changed topic.
// The producer waits for acknowledgement from all in-sync replicas so a
// reported publish is durable.
func NewOrderProducer(brokers []string, topic string, log zerolog.Logger) (*OrderProducer, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &OrderProducer{
		producer: producer,
		topic:    topic,
		log:      log.With().Str("component", "kafka_producer").Logger(),
	}, nil
}

// Close shuts the underlying producer down.
func (p *OrderProducer) Close() error {
	return p.producer.Close()
}

// PublishOrderChanged emits the order's current state. The order ID is the
// message key, so all events of one order land in the same partition in order.
func (p *OrderProducer) PublishOrderChanged(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	event := OrderChangedEvent{
		EventID:    uuid.NewString(),
		OrderID:    aggregate.ID().String(),
		Status:     aggregate.Status().String(),
		Price:      aggregate.Price().String(),
		OccurredAt: time.Now().UTC(),
		AcceptedAt: aggregate.AcceptedAt(),
	}
	if courierID := aggregate.Courier(); courierID != nil {
		id := courierID.String()
		event.CourierID = &id
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order changed event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte("order_changed")},
		},
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		p.log.Error().Err(err).
			Str("order_id", event.OrderID).
			Str("status", event.Status).
			Msg("failed to publish order changed event")
		return fmt.Errorf("send message to topic %s: %w", p.topic, err)
	}

	p.log.Debug().
		Str("order_id", event.OrderID).
		Str("status", event.Status).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("order changed event published")

	return nil
}
