package grant

import (
	"context"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/tenant"

	"gorm.io/gorm"
)

type RoleRow struct {
	ID  string
	Key string
}

//go:generate mockgen -source=grant_repo.go -destination=mock/grant_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, grant *AccessGrant) error
	FindAllByOrganization(ctx context.Context, organizationID string) ([]AccessGrant, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*AccessGrant, error)
	Update(ctx context.Context, grant *AccessGrant) error
	Delete(ctx context.Context, organizationID, id string) error
	GetUserRoles(ctx context.Context, organizationID, userID string) ([]RoleRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, grant *AccessGrant) error {
	return r.db.WithContext(ctx).Create(grant).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string) ([]AccessGrant, error) {
	var grants []AccessGrant
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("created_at ASC").
		Find(&grants).Error
	return grants, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*AccessGrant, error) {
	var grant AccessGrant
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&grant, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

func (r *repository) Update(ctx context.Context, grant *AccessGrant) error {
	return r.db.WithContext(ctx).Save(grant).Error
}

func (r *repository) Delete(ctx context.Context, organizationID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Delete(&AccessGrant{}, "id = ?", id).Error
}

func (r *repository) GetUserRoles(ctx context.Context, organizationID, userID string) ([]RoleRow, error) {
	var rows []RoleRow
	err := r.db.WithContext(ctx).
		Table("user_roles").
		Select("roles.id, roles.key").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ? AND roles.organization_id = ?", userID, organizationID).
		Scan(&rows).Error
	return rows, err
}
