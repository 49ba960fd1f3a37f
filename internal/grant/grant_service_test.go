package grant_test

import (
	"context"
	"testing"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/access"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/grant"
	granterrors "github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/grant/errors"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/rbac"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeGrantRepository struct {
	createFn                  func(ctx context.Context, g *grant.AccessGrant) error
	findAllByOrganizationFn   func(ctx context.Context, organizationID string) ([]grant.AccessGrant, error)
	findByIDAndOrganizationFn func(ctx context.Context, organizationID, id string) (*grant.AccessGrant, error)
	updateFn                  func(ctx context.Context, g *grant.AccessGrant) error
	deleteFn                  func(ctx context.Context, organizationID, id string) error
	getUserRolesFn            func(ctx context.Context, organizationID, userID string) ([]grant.RoleRow, error)
}

func (f *fakeGrantRepository) Create(ctx context.Context, g *grant.AccessGrant) error {
	if f.createFn != nil {
		return f.createFn(ctx, g)
	}
	return nil
}

func (f *fakeGrantRepository) FindAllByOrganization(ctx context.Context, organizationID string) ([]grant.AccessGrant, error) {
	if f.findAllByOrganizationFn != nil {
		return f.findAllByOrganizationFn(ctx, organizationID)
	}
	return nil, nil
}

func (f *fakeGrantRepository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*grant.AccessGrant, error) {
	if f.findByIDAndOrganizationFn != nil {
		return f.findByIDAndOrganizationFn(ctx, organizationID, id)
	}
	return nil, nil
}

func (f *fakeGrantRepository) Update(ctx context.Context, g *grant.AccessGrant) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, g)
	}
	return nil
}

func (f *fakeGrantRepository) Delete(ctx context.Context, organizationID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, organizationID, id)
	}
	return nil
}

func (f *fakeGrantRepository) GetUserRoles(ctx context.Context, organizationID, userID string) ([]grant.RoleRow, error) {
	if f.getUserRolesFn != nil {
		return f.getUserRolesFn(ctx, organizationID, userID)
	}
	return nil, nil
}

func newGrantService(t *testing.T, repo grant.Repository) grant.Service {
	t.Helper()
	defaults, err := rbac.NewDefaults()
	assert.NoError(t, err)
	return grant.NewService(repo, defaults, nil)
}

func TestGrantService_Create(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("success with role target", func(t *testing.T) {
		roleID := uuid.New().String()
		repo := &fakeGrantRepository{
			createFn: func(ctx context.Context, g *grant.AccessGrant) error {
				assert.Equal(t, access.PermPayRunApprove, g.ScopeKey)
				assert.Equal(t, "deny", g.Effect)
				assert.NotNil(t, g.RoleID)
				assert.Nil(t, g.UserID)
				return nil
			},
		}

		resp, err := newGrantService(t, repo).Create(ctx, organizationID, actorID, grant.CreateGrantRequest{
			ScopeKey: access.PermPayRunApprove,
			Effect:   "deny",
			RoleID:   &roleID,
		})

		assert.NoError(t, err)
		assert.Equal(t, "deny", resp.Effect)
		assert.NotNil(t, resp.RoleID)
	})

	t.Run("unknown permission key", func(t *testing.T) {
		_, err := newGrantService(t, &fakeGrantRepository{}).Create(ctx, organizationID, actorID, grant.CreateGrantRequest{
			ScopeKey: "payrun.nonexistent",
			Effect:   "allow",
		})
		assert.ErrorIs(t, err, granterrors.ErrUnknownPermission)
	})

	t.Run("multiple targets rejected", func(t *testing.T) {
		userID := uuid.New().String()
		roleID := uuid.New().String()
		_, err := newGrantService(t, &fakeGrantRepository{}).Create(ctx, organizationID, actorID, grant.CreateGrantRequest{
			ScopeKey: access.PermPayRunRead,
			Effect:   "allow",
			UserID:   &userID,
			RoleID:   &roleID,
		})
		assert.ErrorIs(t, err, granterrors.ErrMultipleTargets)
	})

	t.Run("invalid target id", func(t *testing.T) {
		bad := "not-a-uuid"
		_, err := newGrantService(t, &fakeGrantRepository{}).Create(ctx, organizationID, actorID, grant.CreateGrantRequest{
			ScopeKey: access.PermPayRunRead,
			Effect:   "allow",
			UserID:   &bad,
		})
		assert.ErrorIs(t, err, granterrors.ErrInvalidTargetID)
	})
}

func TestGrantService_Check(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New()
	userID := uuid.New()
	roleID := uuid.New()

	t.Run("explicit deny beats role allow", func(t *testing.T) {
		denyUser := userID
		repo := &fakeGrantRepository{
			findAllByOrganizationFn: func(ctx context.Context, orgID string) ([]grant.AccessGrant, error) {
				return []grant.AccessGrant{
					{ID: uuid.New(), OrganizationID: organizationID, ScopeType: "action", ScopeKey: access.PermPayRunApprove, Effect: "allow", RoleID: &roleID},
					{ID: uuid.New(), OrganizationID: organizationID, ScopeType: "action", ScopeKey: access.PermPayRunApprove, Effect: "deny", UserID: &denyUser},
				}, nil
			},
			getUserRolesFn: func(ctx context.Context, orgID, uid string) ([]grant.RoleRow, error) {
				return []grant.RoleRow{{ID: roleID.String(), Key: access.RolePayrollAdmin}}, nil
			},
		}

		resp, err := newGrantService(t, repo).Check(ctx, organizationID.String(), grant.CheckRequest{
			UserID:        userID.String(),
			PermissionKey: access.PermPayRunApprove,
		})

		assert.NoError(t, err)
		assert.Equal(t, string(access.DecisionDeny), resp.Decision)
		assert.False(t, resp.Allowed)
	})

	t.Run("unset falls back to role defaults", func(t *testing.T) {
		repo := &fakeGrantRepository{
			getUserRolesFn: func(ctx context.Context, orgID, uid string) ([]grant.RoleRow, error) {
				return []grant.RoleRow{{ID: roleID.String(), Key: access.RolePayrollAdmin}}, nil
			},
		}

		resp, err := newGrantService(t, repo).Check(ctx, organizationID.String(), grant.CheckRequest{
			UserID:        userID.String(),
			PermissionKey: access.PermPayRunApprove,
		})

		assert.NoError(t, err)
		assert.Equal(t, string(access.DecisionUnset), resp.Decision)
		assert.True(t, resp.Allowed)
	})

	t.Run("company deny does not leak across companies", func(t *testing.T) {
		companyA := uuid.New()
		repo := &fakeGrantRepository{
			findAllByOrganizationFn: func(ctx context.Context, orgID string) ([]grant.AccessGrant, error) {
				return []grant.AccessGrant{
					{ID: uuid.New(), OrganizationID: organizationID, ScopeType: "action", ScopeKey: access.PermPayRunRead, Effect: "allow"},
					{ID: uuid.New(), OrganizationID: organizationID, ScopeType: "action", ScopeKey: access.PermPayRunRead, Effect: "deny", CompanyID: &companyA},
				}, nil
			},
		}
		svc := newGrantService(t, repo)

		inA, err := svc.Check(ctx, organizationID.String(), grant.CheckRequest{
			UserID:        userID.String(),
			CompanyID:     companyA.String(),
			PermissionKey: access.PermPayRunRead,
		})
		assert.NoError(t, err)
		assert.False(t, inA.Allowed)

		inB, err := svc.Check(ctx, organizationID.String(), grant.CheckRequest{
			UserID:        userID.String(),
			CompanyID:     uuid.New().String(),
			PermissionKey: access.PermPayRunRead,
		})
		assert.NoError(t, err)
		assert.True(t, inB.Allowed)
	})
}

func TestGrantService_Authorize(t *testing.T) {
	ctx := context.Background()
	organizationID := uuid.New()
	userID := uuid.New()

	repo := &fakeGrantRepository{
		findAllByOrganizationFn: func(ctx context.Context, orgID string) ([]grant.AccessGrant, error) {
			deny := userID
			return []grant.AccessGrant{
				{ID: uuid.New(), OrganizationID: organizationID, ScopeType: "action", ScopeKey: access.PermReportRead, Effect: "deny", UserID: &deny},
			}, nil
		},
		getUserRolesFn: func(ctx context.Context, orgID, uid string) ([]grant.RoleRow, error) {
			return []grant.RoleRow{{ID: uuid.New().String(), Key: access.RoleOrgOwner}}, nil
		},
	}

	// Explicit deny wins even though ORG_OWNER's defaults carry the
	// permission.
	allowed, err := newGrantService(t, repo).Authorize(ctx, organizationID.String(), "", userID.String(), access.PermReportRead)
	assert.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = newGrantService(t, repo).Authorize(ctx, organizationID.String(), "", uuid.New().String(), access.PermReportRead)
	assert.NoError(t, err)
	assert.True(t, allowed)
}
