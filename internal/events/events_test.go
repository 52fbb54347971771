package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/wichananm65/styliqo-backend/internal/logging"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisherKeysByOrder(t *testing.T) {
	created := &recordingWriter{}
	updated := &recordingWriter{}
	p := &KafkaPublisher{writers: map[string]messageWriter{
		TopicOrderCreated:       created,
		TopicOrderStatusUpdated: updated,
	}}

	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	err := p.Publish(context.Background(), Event{Topic: TopicOrderStatusUpdated, OrderID: "o-1", Status: "Shipping", PrevStatus: "Ordered", OccurredAt: at})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(created.msgs) != 0 || len(updated.msgs) != 1 {
		t.Fatalf("event routed to wrong topic")
	}
	msg := updated.msgs[0]
	if string(msg.Key) != "o-1" || !msg.Time.Equal(at) {
		t.Fatalf("unexpected message %+v", msg)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("value is not json: %v", err)
	}
	if decoded["previousStatus"] != "Ordered" {
		t.Fatalf("unexpected payload %s", string(msg.Value))
	}

	if err := p.Close(); err != nil || !created.closed || !updated.closed {
		t.Fatalf("close did not reach writers")
	}
}

func TestKafkaPublisherErrors(t *testing.T) {
	p := &KafkaPublisher{writers: map[string]messageWriter{
		TopicOrderCreated: &recordingWriter{err: errors.New("broker down")},
	}}
	if err := p.Publish(context.Background(), Event{Topic: "unknown"}); err == nil {
		t.Fatalf("expected unknown topic error")
	}
	if err := p.Publish(context.Background(), Event{Topic: TopicOrderCreated, OrderID: "o"}); err == nil {
		t.Fatalf("expected write error")
	}
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher(logging.Discard())
	if err := p.Publish(context.Background(), Event{Topic: TopicOrderCreated}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestKafkaWriterFlushesQuickly(t *testing.T) {
	w := NewKafkaWriter([]string{"localhost:9092"}, TopicOrderCreated)
	defer w.Close()
	if w.Topic != TopicOrderCreated {
		t.Fatalf("unexpected topic %q", w.Topic)
	}
	if w.BatchTimeout <= 0 || w.BatchTimeout > 100*time.Millisecond {
		t.Fatalf("batch timeout %v holds events back", w.BatchTimeout)
	}
	if w.MaxAttempts <= 0 || w.MaxAttempts > 3 {
		t.Fatalf("unexpected max attempts %d", w.MaxAttempts)
	}
	if w.WriteTimeout <= 0 {
		t.Fatalf("write timeout not set")
	}
}
