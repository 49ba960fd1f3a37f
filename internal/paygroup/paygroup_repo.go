package paygroup

import (
	"context"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=paygroup_repo.go -destination=mock/paygroup_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, group *PayGroup) error
	FindAllByOrganization(ctx context.Context, organizationID string) ([]PayGroup, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*PayGroup, error)
	FindDefaultByCompany(ctx context.Context, organizationID, companyID string) (*PayGroup, error)
	Update(ctx context.Context, group *PayGroup) error
	Delete(ctx context.Context, organizationID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, group *PayGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string) ([]PayGroup, error) {
	var groups []PayGroup
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("name ASC").
		Find(&groups).Error
	return groups, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*PayGroup, error) {
	var group PayGroup
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&group, "id = ?", id).Error
	return &group, err
}

func (r *repository) FindDefaultByCompany(ctx context.Context, organizationID, companyID string) (*PayGroup, error) {
	var group PayGroup
	err := r.db.WithContext(ctx).
		Scopes(tenant.CompanyScope(organizationID, companyID)).
		Where("is_default = ?", true).
		First(&group).Error
	return &group, err
}

func (r *repository) Update(ctx context.Context, group *PayGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *repository) Delete(ctx context.Context, organizationID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Delete(&PayGroup{}, "id = ?", id).Error
}
