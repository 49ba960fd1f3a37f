package calculation

import (
	"context"
	"errors"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/audit"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/employee"
	employeeerrors "github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/employee/errors"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/paycalc"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=calculation_service.go -destination=mock/calculation_service_mock.go -package=mock
type Service interface {
	Calculate(ctx context.Context, organizationID, actorID string, req CalculateRequest) (CalculateResponse, error)
}

type service struct {
	employeeRepo employee.Repository
	auditRepo    audit.Repository
	logger       *zap.Logger
}

func NewService(employeeRepo employee.Repository, auditRepo audit.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("calculation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calculation.service")
	}
	return &service{employeeRepo: employeeRepo, auditRepo: auditRepo, logger: l}
}

func (s *service) Calculate(
	ctx context.Context,
	organizationID, actorID string,
	req CalculateRequest,
) (CalculateResponse, error) {
	empl, err := s.employeeRepo.FindByIDAndOrganization(ctx, organizationID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CalculateResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return CalculateResponse{}, err
	}
	if !empl.Active {
		return CalculateResponse{}, employeeerrors.ErrEmployeeInactive
	}

	input := resolveInput(*empl, req)

	result, err := paycalc.Calculate(input)
	if err != nil {
		if errors.Is(err, paycalc.ErrUnsupportedCountry) {
			return CalculateResponse{}, employeeerrors.ErrUnsupportedCountry
		}
		return CalculateResponse{}, err
	}

	s.recordAudit(ctx, organizationID, actorID, req, input, result)

	return CalculateResponse{
		Success: true,
		Data:    result,
		Employee: EmployeeRef{
			ID:   empl.ID.String(),
			Name: empl.FullName,
		},
	}, nil
}

// resolveInput layers the request's overrides over the employee record.
func resolveInput(empl employee.Employee, req CalculateRequest) paycalc.Input {
	input := paycalc.Input{
		Classification:    empl.Classification,
		PayType:           empl.PayType,
		PayRate:           empl.PayRate,
		Country:           paycalc.Country(empl.Country),
		BenefitDeductions: req.BenefitDeductions,
	}

	if req.EmployeeType != nil {
		input.Classification = paycalc.Classification(*req.EmployeeType)
	}
	if req.PayType != nil {
		input.PayType = paycalc.PayType(*req.PayType)
	}
	if req.PayRate != nil {
		input.PayRate = *req.PayRate
	}
	if req.Country != nil {
		input.Country = paycalc.Country(*req.Country)
	}
	if req.HoursWorked != nil {
		input.HoursWorked = *req.HoursWorked
	}
	if req.PiecesCompleted != nil {
		input.PiecesCompleted = *req.PiecesCompleted
	}

	for _, d := range req.CustomDeductions {
		input.LineItems = append(input.LineItems, paycalc.LineItem{
			Type:   paycalc.LineItemType(d.Type),
			Name:   d.Name,
			Amount: d.Amount,
		})
	}

	return input
}

func (s *service) recordAudit(
	ctx context.Context,
	organizationID, actorID string,
	req CalculateRequest,
	input paycalc.Input,
	result paycalc.Result,
) {
	if s.auditRepo == nil {
		return
	}

	payload := map[string]any{
		"pay_run_id": req.PayRunID,
		"input":      input,
		"gross_pay":  result.GrossPay,
		"net_pay":    result.NetPay,
	}
	entry := audit.NewEntry(organizationID, actorID, "calculation.run", "employee", req.EmployeeID, payload)
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("audit record failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
	}
}
