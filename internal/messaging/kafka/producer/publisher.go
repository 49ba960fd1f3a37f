package producer

import (
	"context"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// publisher is the slice of kafkago.Writer the worker needs; tests swap in
// a recording fake.
type publisher interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// buildMessage maps an outbox row onto the wire: aggregate ID as the
// partition key, payload as-is, provenance in headers.
func buildMessage(event kafka.OutboxEvent) kafkago.Message {
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if event.RequestID != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(event.RequestID)})
	}

	return kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	}
}
