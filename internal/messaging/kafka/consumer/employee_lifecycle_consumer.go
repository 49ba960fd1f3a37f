package consumer

import (
	"context"
	"encoding/json"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/events"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/paygroup"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeLifecycle places newly created employees into their
// company's default pay group. Assignment is a no-op when the company has
// no default group or the employee was already assigned, so redelivery
// is safe.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	payGroupService paygroup.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		err = payGroupService.AssignEmployeeDefault(ctx, event.OrganizationID, event.CompanyID, event.EmployeeID)
		if err != nil {
			log.Error("assign default pay group failed",
				zap.String("employee_id", event.EmployeeID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("employee placed in default pay group",
			zap.String("employee_id", event.EmployeeID),
			zap.String("company_id", event.CompanyID),
		)
	}
}
