package organization

import (
	"context"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=organization_repo.go -destination=mock/organization_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id string) (*Organization, error)
	Update(ctx context.Context, org *Organization) error

	CreateCompany(ctx context.Context, company *Company) error
	FindCompanies(ctx context.Context, organizationID string) ([]Company, error)
	FindCompanyByID(ctx context.Context, organizationID, id string) (*Company, error)
	UpdateCompany(ctx context.Context, company *Company) error
	DeleteCompany(ctx context.Context, organizationID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*Organization, error) {
	var org Organization
	err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *repository) Update(ctx context.Context, org *Organization) error {
	return r.db.WithContext(ctx).Save(org).Error
}

func (r *repository) CreateCompany(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *repository) FindCompanies(ctx context.Context, organizationID string) ([]Company, error) {
	var companies []Company
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("name ASC").
		Find(&companies).Error
	return companies, err
}

func (r *repository) FindCompanyByID(ctx context.Context, organizationID, id string) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&company, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repository) UpdateCompany(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *repository) DeleteCompany(ctx context.Context, organizationID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Delete(&Company{}, "id = ?", id).Error
}
