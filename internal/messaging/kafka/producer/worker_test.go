package producer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/messaging/kafka"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeOutboxRepository struct {
	pending []kafka.OutboxEvent
	sent    []string
	failed  map[string]string
}

func (f *fakeOutboxRepository) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.pending, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	if f.failed == nil {
		f.failed = map[string]string{}
	}
	f.failed[id] = reason
	return nil
}

type fakePublisher struct {
	messages []kafkago.Message
	failFor  map[string]error
}

func (f *fakePublisher) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, msg := range msgs {
		if err, ok := f.failFor[string(msg.Key)]; ok {
			return err
		}
		f.messages = append(f.messages, msg)
	}
	return nil
}

func outboxFixture(topic, eventType string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     uuid.NewString(),
		AggregateType: "employee",
		AggregateID:   uuid.NewString(),
		EventType:     eventType,
		Topic:         topic,
		Payload:       datatypes.JSON(`{"employee_id":"abc"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestWorker_DrainOnce_PublishesAndMarksSent(t *testing.T) {
	event := outboxFixture("payroll.employee.lifecycle.v1", "employee.created")
	repo := &fakeOutboxRepository{pending: []kafka.OutboxEvent{event}}
	pub := &fakePublisher{}
	w := &Worker{repo: repo, pub: pub, logger: zap.NewNop(), poll: time.Second}

	sent, failed, err := w.drainOnce(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Zero(t, failed)
	assert.Equal(t, []string{event.ID}, repo.sent)

	assert.Len(t, pub.messages, 1)
	msg := pub.messages[0]
	assert.Equal(t, event.Topic, msg.Topic)
	assert.Equal(t, event.AggregateID, string(msg.Key))
	assert.JSONEq(t, string(event.Payload), string(msg.Value))

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, event.EventType, headers["event_type"])
	assert.Equal(t, event.AggregateType, headers["aggregate_type"])
	assert.Equal(t, event.RequestID, headers["request_id"])
}

func TestWorker_DrainOnce_FailureDoesNotStallBatch(t *testing.T) {
	bad := outboxFixture("payroll.payrun.payslips.requested.v1", "payrun.payslips_requested")
	good := outboxFixture("payroll.employee.lifecycle.v1", "employee.created")
	repo := &fakeOutboxRepository{pending: []kafka.OutboxEvent{bad, good}}
	pub := &fakePublisher{failFor: map[string]error{
		bad.AggregateID: errors.New("broker unavailable"),
	}}
	w := &Worker{repo: repo, pub: pub, logger: zap.NewNop(), poll: time.Second}

	sent, failed, err := w.drainOnce(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{good.ID}, repo.sent)
	assert.Equal(t, "broker unavailable", repo.failed[bad.ID])
}
