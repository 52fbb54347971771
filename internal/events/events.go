// Package events publishes order lifecycle events to the message bus.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	TopicOrderCreated       = "order-created"
	TopicOrderStatusUpdated = "order-status-updated"
)

// Event describes something that happened to an order.
type Event struct {
	Topic      string    `json:"-"`
	OrderID    string    `json:"orderId"`
	Reference  string    `json:"reference,omitempty"`
	UserID     string    `json:"userId"`
	Status     string    `json:"status"`
	PrevStatus string    `json:"previousStatus,omitempty"`
	Total      int64     `json:"totalAmount,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

const (
	writerBatchTimeout = 10 * time.Millisecond
	writerMaxAttempts  = 2
	writerWriteTimeout = 2 * time.Second
)

// KafkaPublisher writes one message per event, keyed by order id so every
// event for an order lands on the same partition.
type KafkaPublisher struct {
	writers map[string]messageWriter
}

// NewKafkaWriter creates a writer that flushes each event right away and
// gives up quickly when the broker is unreachable.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: writerBatchTimeout,
		MaxAttempts:  writerMaxAttempts,
		WriteTimeout: writerWriteTimeout,
	}
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{writers: map[string]messageWriter{
		TopicOrderCreated:       NewKafkaWriter(brokers, TopicOrderCreated),
		TopicOrderStatusUpdated: NewKafkaWriter(brokers, TopicOrderStatusUpdated),
	}}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	w, ok := p.writers[e.Topic]
	if !ok {
		return errors.Errorf("no writer for topic %q", e.Topic)
	}
	value, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	msg := kafka.Message{
		Key:   []byte(e.OrderID),
		Value: value,
		Time:  e.OccurredAt,
	}
	if err := w.WriteMessages(ctx, msg); err != nil {
		return errors.Wrapf(err, "write %s", e.Topic)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	var first error
	for _, w := range p.writers {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// LogPublisher records events in the log when no broker is configured.
type LogPublisher struct {
	log logrus.FieldLogger
}

func NewLogPublisher(log logrus.FieldLogger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, e Event) error {
	p.log.WithFields(logrus.Fields{
		"topic":    e.Topic,
		"order_id": e.OrderID,
		"status":   e.Status,
	}).Info("order event")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
