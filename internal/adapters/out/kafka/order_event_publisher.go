// Package kafka publishes committed order events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// OrderEventPublisher writes one message per event, keyed by order id so
// that the events of one order keep their order within a partition.
type OrderEventPublisher struct {
	writer   messageWriter
	producer string
	newID    func() string
}

// NewOrderEventPublisher writes to topic on the comma separated brokers and
// waits for all in-sync replicas.
func NewOrderEventPublisher(brokers, topic, producer string) (*OrderEventPublisher, error) {
	if strings.TrimSpace(brokers) == "" {
		return nil, errs.NewValueIsRequiredError("kafka brokers")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, errs.NewValueIsRequiredError("kafka topic")
	}

	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return newOrderEventPublisher(writer, producer), nil
}

func newOrderEventPublisher(writer messageWriter, producer string) *OrderEventPublisher {
	return &OrderEventPublisher{writer: writer, producer: producer, newID: uuid.NewString}
}

func (p *OrderEventPublisher) Publish(ctx context.Context, events ...order.Event) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafkago.Message, 0, len(events))
	for _, e := range events {
		msg, err := p.message(e)
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("write %d order events: %w", len(messages), err)
	}
	return nil
}

func (p *OrderEventPublisher) Close() error {
	return p.writer.Close()
}

func (p *OrderEventPublisher) message(e order.Event) (kafkago.Message, error) {
	payload, err := json.Marshal(payloadFromEvent(e))
	if err != nil {
		return kafkago.Message{}, err
	}

	value, err := json.Marshal(Envelope{
		EventID:       p.newID(),
		EventType:     string(e.Type),
		EventVersion:  envelopeVersion,
		OccurredAt:    e.OccurredAt.UTC(),
		Producer:      p.producer,
		CorrelationID: e.OrderID.String(),
		Payload:       payload,
	})
	if err != nil {
		return kafkago.Message{}, err
	}

	return kafkago.Message{
		Key:   []byte(e.OrderID.String()),
		Value: value,
		Time:  e.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
	}, nil
}
