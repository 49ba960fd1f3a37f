package expatriate

import (
	"context"
	"errors"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/audit"
	expatriateerrors "github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/expatriate/errors"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/paycalc"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/contextutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=expatriate_service.go -destination=mock/expatriate_service_mock.go -package=mock
type Service interface {
	Calculate(ctx context.Context, organizationID, actorID string, req CalculateRequest) (paycalc.ExpatriateResult, error)
}

type service struct {
	auditRepo audit.Repository
	logger    *zap.Logger
}

func NewService(auditRepo audit.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("expatriate.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("expatriate.service")
	}
	return &service{auditRepo: auditRepo, logger: l}
}

func (s *service) Calculate(
	ctx context.Context,
	organizationID, actorID string,
	req CalculateRequest,
) (paycalc.ExpatriateResult, error) {
	result, err := paycalc.CalculateExpatriate(paycalc.ExpatriateInput{
		DailyRate:       req.DailyRate,
		DaysWorked:      req.DaysWorked,
		Allowances:      req.Allowances,
		ForeignCurrency: req.ForeignCurrency,
		ExchangeRate:    req.ExchangeRate,
		TaxCountry:      paycalc.Country(req.TaxCountry),
	})
	if err != nil {
		switch {
		case errors.Is(err, paycalc.ErrInvalidRate):
			return paycalc.ExpatriateResult{}, expatriateerrors.ErrInvalidRate
		case errors.Is(err, paycalc.ErrUnsupportedCountry):
			return paycalc.ExpatriateResult{}, expatriateerrors.ErrUnsupportedTaxCountry
		}
		return paycalc.ExpatriateResult{}, err
	}

	if s.auditRepo != nil {
		entry := audit.NewEntry(organizationID, actorID, "expatriate_calculation.run", "expatriate", "", map[string]any{
			"input":     req,
			"net_local": result.NetLocal,
		})
		if err := s.auditRepo.Record(ctx, entry); err != nil {
			contextutil.GetLogger(ctx, s.logger).Warn("audit record failed", zap.Error(err))
		}
	}

	return result, nil
}
