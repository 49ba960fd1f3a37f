package organization

import (
	"context"
	"errors"

	organizationerrors "github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/organization/errors"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/paycalc"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=organization_service.go -destination=mock/organization_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, organizationID string) (OrganizationResponse, error)
	Update(ctx context.Context, organizationID string, req UpdateOrganizationRequest) (OrganizationResponse, error)

	CreateCompany(ctx context.Context, organizationID string, req CreateCompanyRequest) (CompanyResponse, error)
	GetCompanies(ctx context.Context, organizationID string) ([]CompanyResponse, error)
	GetCompanyByID(ctx context.Context, organizationID, id string) (CompanyResponse, error)
	UpdateCompany(ctx context.Context, organizationID, id string, req UpdateCompanyRequest) (CompanyResponse, error)
	DeleteCompany(ctx context.Context, organizationID, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, organizationID string) (OrganizationResponse, error) {
	org, err := s.repo.FindByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrganizationResponse{}, organizationerrors.ErrOrganizationNotFound
		}
		return OrganizationResponse{}, err
	}
	return mapOrganization(*org), nil
}

func (s *service) Update(
	ctx context.Context,
	organizationID string,
	req UpdateOrganizationRequest,
) (OrganizationResponse, error) {
	org, err := s.repo.FindByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrganizationResponse{}, organizationerrors.ErrOrganizationNotFound
		}
		return OrganizationResponse{}, err
	}

	if err := validateCountry(req.Country); err != nil {
		return OrganizationResponse{}, err
	}

	org.Name = req.Name
	org.Country = req.Country
	if err := s.repo.Update(ctx, org); err != nil {
		return OrganizationResponse{}, err
	}

	return mapOrganization(*org), nil
}

func (s *service) CreateCompany(
	ctx context.Context,
	organizationID string,
	req CreateCompanyRequest,
) (CompanyResponse, error) {
	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return CompanyResponse{}, organizationerrors.ErrInvalidOrganizationID
	}

	if err := validateCountry(req.Country); err != nil {
		return CompanyResponse{}, err
	}

	company := &Company{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		Name:           req.Name,
		Country:        req.Country,
		Currency:       req.Currency,
	}
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		return CompanyResponse{}, err
	}

	return mapCompany(*company), nil
}

func (s *service) GetCompanies(ctx context.Context, organizationID string) ([]CompanyResponse, error) {
	companies, err := s.repo.FindCompanies(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	out := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		out[i] = mapCompany(c)
	}
	return out, nil
}

func (s *service) GetCompanyByID(ctx context.Context, organizationID, id string) (CompanyResponse, error) {
	company, err := s.repo.FindCompanyByID(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, organizationerrors.ErrCompanyNotFound
		}
		return CompanyResponse{}, err
	}
	return mapCompany(*company), nil
}

func (s *service) UpdateCompany(
	ctx context.Context,
	organizationID, id string,
	req UpdateCompanyRequest,
) (CompanyResponse, error) {
	company, err := s.repo.FindCompanyByID(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, organizationerrors.ErrCompanyNotFound
		}
		return CompanyResponse{}, err
	}

	if err := validateCountry(req.Country); err != nil {
		return CompanyResponse{}, err
	}

	company.Name = req.Name
	company.Country = req.Country
	company.Currency = req.Currency
	if err := s.repo.UpdateCompany(ctx, company); err != nil {
		return CompanyResponse{}, err
	}

	return mapCompany(*company), nil
}

func (s *service) DeleteCompany(ctx context.Context, organizationID, id string) error {
	return s.repo.DeleteCompany(ctx, organizationID, id)
}

// validateCountry rejects countries without a statutory rule table up
// front, so payroll never silently degrades to zero deductions later.
func validateCountry(code string) error {
	if _, err := paycalc.RulesFor(paycalc.Country(code)); err != nil {
		return organizationerrors.ErrUnsupportedCountry
	}
	return nil
}

func mapOrganization(org Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:      org.ID.String(),
		Name:    org.Name,
		Country: org.Country,
	}
}

func mapCompany(company Company) CompanyResponse {
	return CompanyResponse{
		ID:             company.ID.String(),
		OrganizationID: company.OrganizationID.String(),
		Name:           company.Name,
		Country:        company.Country,
		Currency:       company.Currency,
	}
}
