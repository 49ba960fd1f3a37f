package consumer

import (
	"context"
	"encoding/json"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/events"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/payrun"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePayRunPayslipsRequested renders the payslip PDFs for an approved
// pay run. Generation overwrites any previous render, so redelivered
// messages converge to the same result.
func ConsumePayRunPayslipsRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	payRunService payrun.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payrun_payslips")
	log.Info("payslip consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payslip consumer stopped")
				return
			}
			log.Error("fetch payslip message failed", zap.Error(err))
			continue
		}

		var event events.PayRunPayslipsRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payslips_requested event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		err = payRunService.GeneratePayslips(ctx, event.OrganizationID, event.PayRunID)
		if err != nil {
			log.Error("generate payslips failed",
				zap.String("pay_run_id", event.PayRunID),
				zap.String("organization_id", event.OrganizationID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payslip message failed", zap.Error(err))
			continue
		}

		log.Info("payslips generated",
			zap.String("pay_run_id", event.PayRunID),
			zap.String("organization_id", event.OrganizationID),
		)
	}
}
