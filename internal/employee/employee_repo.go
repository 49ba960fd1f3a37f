package employee

import (
	"context"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllByOrganization(ctx context.Context, organizationID string) ([]Employee, error)
	FindAllByCompany(ctx context.Context, organizationID, companyID string) ([]Employee, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*Employee, error)
	FindActiveByPayGroup(ctx context.Context, organizationID, payGroupID string) ([]Employee, error)
	Update(ctx context.Context, empl *Employee) error
	AssignPayGroup(ctx context.Context, id string, payGroupID uuid.UUID) error
	Delete(ctx context.Context, organizationID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("employee_number ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindAllByCompany(ctx context.Context, organizationID, companyID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.CompanyScope(organizationID, companyID)).
		Order("employee_number ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindActiveByPayGroup(ctx context.Context, organizationID, payGroupID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("pay_group_id = ?", payGroupID).
		Where("active = ?", true).
		Order("employee_number ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) AssignPayGroup(ctx context.Context, id string, payGroupID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Where("pay_group_id IS NULL").
		Update("pay_group_id", payGroupID).Error
}

func (r *repository) Delete(ctx context.Context, organizationID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Delete(&Employee{}, "id = ?", id).Error
}
