package paygroup

import (
	"context"
	"errors"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/employee"
	paygrouperrors "github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/paygroup/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=paygroup_service.go -destination=mock/paygroup_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID string, req CreatePayGroupRequest) (PayGroupResponse, error)
	GetAll(ctx context.Context, organizationID string) ([]PayGroupResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (PayGroupResponse, error)
	Update(ctx context.Context, organizationID, id string, req UpdatePayGroupRequest) (PayGroupResponse, error)
	Delete(ctx context.Context, organizationID, id string) error

	// AssignEmployeeDefault places a newly created employee into the
	// company's default pay group. Called by the lifecycle consumer.
	AssignEmployeeDefault(ctx context.Context, organizationID, companyID, employeeID string) error
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(repo Repository, employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("paygroup.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("paygroup.service")
	}
	return &service{repo: repo, employeeRepo: employeeRepo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	organizationID string,
	req CreatePayGroupRequest,
) (PayGroupResponse, error) {
	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return PayGroupResponse{}, paygrouperrors.ErrInvalidPayGroupID
	}
	companyUUID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return PayGroupResponse{}, paygrouperrors.ErrInvalidCompanyID
	}

	rate := req.ExchangeRate
	if rate == 0 {
		rate = 1
	}
	if rate < 0 {
		return PayGroupResponse{}, paygrouperrors.ErrInvalidExchangeRate
	}

	group := &PayGroup{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		CompanyID:      companyUUID,
		Name:           req.Name,
		Currency:       req.Currency,
		Frequency:      Frequency(req.Frequency),
		ExchangeRate:   rate,
		IsDefault:      req.IsDefault,
	}
	if err := s.repo.Create(ctx, group); err != nil {
		s.logger.Error("create pay group failed", zap.Error(err))
		return PayGroupResponse{}, err
	}

	s.logger.Info("create pay group success", zap.String("pay_group_id", group.ID.String()))
	return mapToResponse(*group), nil
}

func (s *service) GetAll(ctx context.Context, organizationID string) ([]PayGroupResponse, error) {
	groups, err := s.repo.FindAllByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	out := make([]PayGroupResponse, len(groups))
	for i, g := range groups {
		out[i] = mapToResponse(g)
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (PayGroupResponse, error) {
	group, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayGroupResponse{}, paygrouperrors.ErrPayGroupNotFound
		}
		return PayGroupResponse{}, err
	}
	return mapToResponse(*group), nil
}

func (s *service) Update(
	ctx context.Context,
	organizationID, id string,
	req UpdatePayGroupRequest,
) (PayGroupResponse, error) {
	group, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayGroupResponse{}, paygrouperrors.ErrPayGroupNotFound
		}
		return PayGroupResponse{}, err
	}

	rate := req.ExchangeRate
	if rate == 0 {
		rate = 1
	}
	if rate < 0 {
		return PayGroupResponse{}, paygrouperrors.ErrInvalidExchangeRate
	}

	group.Name = req.Name
	group.Currency = req.Currency
	group.Frequency = Frequency(req.Frequency)
	group.ExchangeRate = rate
	group.IsDefault = req.IsDefault

	if err := s.repo.Update(ctx, group); err != nil {
		s.logger.Error("update pay group failed", zap.Error(err))
		return PayGroupResponse{}, err
	}

	return mapToResponse(*group), nil
}

func (s *service) Delete(ctx context.Context, organizationID, id string) error {
	if err := s.repo.Delete(ctx, organizationID, id); err != nil {
		s.logger.Error("delete pay group failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) AssignEmployeeDefault(ctx context.Context, organizationID, companyID, employeeID string) error {
	group, err := s.repo.FindDefaultByCompany(ctx, organizationID, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No default group configured for this company; nothing to assign.
			s.logger.Debug("no default pay group for company",
				zap.String("organization_id", organizationID),
				zap.String("company_id", companyID),
			)
			return nil
		}
		return err
	}

	if err := s.employeeRepo.AssignPayGroup(ctx, employeeID, group.ID); err != nil {
		s.logger.Error("assign default pay group failed",
			zap.String("employee_id", employeeID),
			zap.String("pay_group_id", group.ID.String()),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("assigned default pay group",
		zap.String("employee_id", employeeID),
		zap.String("pay_group_id", group.ID.String()),
	)
	return nil
}

func mapToResponse(group PayGroup) PayGroupResponse {
	return PayGroupResponse{
		ID:             group.ID.String(),
		OrganizationID: group.OrganizationID.String(),
		CompanyID:      group.CompanyID.String(),
		Name:           group.Name,
		Currency:       group.Currency,
		Frequency:      string(group.Frequency),
		ExchangeRate:   group.ExchangeRate,
		IsDefault:      group.IsDefault,
	}
}
