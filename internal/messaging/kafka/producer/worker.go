package producer

import (
	"context"
	"time"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	defaultPollInterval = 3 * time.Second
	drainBatchSize      = 50
)

// Worker drains the transactional outbox to Kafka. A publish failure marks
// the row failed and moves on; the row comes back once its retry backoff
// elapses, so one poisoned event cannot stall the batch.
type Worker struct {
	repo   kafka.OutboxRepository
	pub    publisher
	logger *zap.Logger
	poll   time.Duration
}

func NewWorker(
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) *Worker {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Worker{
		repo:   repo,
		pub:    writer,
		logger: logger.Named("kafka.producer.worker"),
		poll:   pollInterval,
	}
}

// Run polls until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()

	w.logger.Info("outbox worker started", zap.Duration("poll_interval", w.poll))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			sent, failed, err := w.drainOnce(ctx)
			if err != nil {
				w.logger.Error("outbox drain failed", zap.Error(err))
				continue
			}
			if sent > 0 || failed > 0 {
				w.logger.Info("outbox drained",
					zap.Int("sent", sent),
					zap.Int("failed", failed),
				)
			}
		}
	}
}

func (w *Worker) drainOnce(ctx context.Context) (sent, failed int, err error) {
	events, err := w.repo.ListPending(ctx, drainBatchSize)
	if err != nil {
		return 0, 0, err
	}

	for _, event := range events {
		if pubErr := w.pub.WriteMessages(ctx, buildMessage(event)); pubErr != nil {
			failed++
			w.logger.Warn("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(pubErr),
			)
			_ = w.repo.MarkFailed(ctx, event.ID, pubErr.Error())
			continue
		}

		if markErr := w.repo.MarkSent(ctx, event.ID); markErr != nil {
			w.logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(markErr),
			)
			continue
		}
		sent++
	}

	return sent, failed, nil
}
