package grant

import (
	"context"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/access"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/audit"
	granterrors "github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/grant/errors"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/rbac"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=grant_service.go -destination=mock/grant_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID, actorID string, req CreateGrantRequest) (GrantResponse, error)
	GetAll(ctx context.Context, organizationID string) ([]GrantResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (GrantResponse, error)
	Update(ctx context.Context, organizationID, actorID, id string, req UpdateGrantRequest) (GrantResponse, error)
	Delete(ctx context.Context, organizationID, actorID, id string) error

	// Check resolves the effective decision for one user and permission.
	Check(ctx context.Context, organizationID string, req CheckRequest) (CheckResponse, error)
	// Authorize composes grant resolution with the role-default fallback.
	Authorize(ctx context.Context, organizationID, companyID, userID, permissionKey string) (bool, error)
}

type service struct {
	repo      Repository
	defaults  *rbac.Defaults
	auditRepo audit.Repository
	loads     singleflight.Group
}

func NewService(repo Repository, defaults *rbac.Defaults, auditRepo audit.Repository) Service {
	return &service{repo: repo, defaults: defaults, auditRepo: auditRepo}
}

func (s *service) Create(
	ctx context.Context,
	organizationID, actorID string,
	req CreateGrantRequest,
) (GrantResponse, error) {
	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return GrantResponse{}, granterrors.ErrInvalidOrganizationID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return GrantResponse{}, granterrors.ErrInvalidActorID
	}

	row := &AccessGrant{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		ScopeType:      string(access.ScopeAction),
		ScopeKey:       req.ScopeKey,
		Effect:         req.Effect,
		CreatedBy:      actorUUID,
	}
	if err := applyTarget(row, req.ScopeKey, req.CompanyID, req.UserID, req.RoleID); err != nil {
		return GrantResponse{}, err
	}

	if err := s.repo.Create(ctx, row); err != nil {
		return GrantResponse{}, err
	}

	s.recordAudit(ctx, organizationID, actorID, "GRANT_CREATED", row)

	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, organizationID string) ([]GrantResponse, error) {
	grants, err := s.repo.FindAllByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	out := make([]GrantResponse, len(grants))
	for i, g := range grants {
		out[i] = mapToResponse(g)
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (GrantResponse, error) {
	row, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return GrantResponse{}, granterrors.ErrGrantNotFound
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(
	ctx context.Context,
	organizationID, actorID, id string,
	req UpdateGrantRequest,
) (GrantResponse, error) {
	row, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return GrantResponse{}, granterrors.ErrGrantNotFound
	}

	row.ScopeKey = req.ScopeKey
	row.Effect = req.Effect
	row.CompanyID = nil
	row.UserID = nil
	row.RoleID = nil
	if err := applyTarget(row, req.ScopeKey, req.CompanyID, req.UserID, req.RoleID); err != nil {
		return GrantResponse{}, err
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return GrantResponse{}, err
	}

	s.recordAudit(ctx, organizationID, actorID, "GRANT_UPDATED", row)

	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, organizationID, actorID, id string) error {
	row, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		return granterrors.ErrGrantNotFound
	}

	if err := s.repo.Delete(ctx, organizationID, id); err != nil {
		return err
	}

	s.recordAudit(ctx, organizationID, actorID, "GRANT_DELETED", row)

	return nil
}

func (s *service) Check(
	ctx context.Context,
	organizationID string,
	req CheckRequest,
) (CheckResponse, error) {
	decision, roleKeys, err := s.resolve(ctx, organizationID, req.CompanyID, req.UserID, req.PermissionKey)
	if err != nil {
		return CheckResponse{}, err
	}

	allowed := decision == access.DecisionAllow
	if decision == access.DecisionUnset {
		allowed, err = s.defaults.Allowed(roleKeys, req.PermissionKey)
		if err != nil {
			return CheckResponse{}, err
		}
	}

	return CheckResponse{Decision: string(decision), Allowed: allowed}, nil
}

func (s *service) Authorize(
	ctx context.Context,
	organizationID, companyID, userID, permissionKey string,
) (bool, error) {
	decision, roleKeys, err := s.resolve(ctx, organizationID, companyID, userID, permissionKey)
	if err != nil {
		return false, err
	}

	switch decision {
	case access.DecisionDeny:
		return false, nil
	case access.DecisionAllow:
		return true, nil
	default:
		return s.defaults.Allowed(roleKeys, permissionKey)
	}
}

// resolve loads the organization's grants and the user's roles, then runs
// the pure resolver. Concurrent loads for the same organization collapse
// into one query.
func (s *service) resolve(
	ctx context.Context,
	organizationID, companyID, userID, permissionKey string,
) (access.Decision, []string, error) {
	loaded, err, _ := s.loads.Do(organizationID, func() (any, error) {
		return s.repo.FindAllByOrganization(ctx, organizationID)
	})
	if err != nil {
		return access.DecisionUnset, nil, err
	}
	rows := loaded.([]AccessGrant)

	roles, err := s.repo.GetUserRoles(ctx, organizationID, userID)
	if err != nil {
		return access.DecisionUnset, nil, err
	}

	roleIDs := make([]string, len(roles))
	roleKeys := make([]string, len(roles))
	for i, role := range roles {
		roleIDs[i] = role.ID
		roleKeys[i] = role.Key
	}

	grants := make([]access.Grant, len(rows))
	for i, row := range rows {
		grants[i] = row.toResolverGrant()
	}

	decision := access.Resolve(grants, access.Context{
		UserID:    userID,
		RoleIDs:   roleIDs,
		CompanyID: companyID,
	}, permissionKey)

	return decision, roleKeys, nil
}

func (s *service) recordAudit(ctx context.Context, organizationID, actorID, action string, row *AccessGrant) {
	if s.auditRepo == nil {
		return
	}
	entry := audit.NewEntry(organizationID, actorID, action, "access_grant", row.ID.String(), mapToResponse(*row))
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		contextutil.GetLogger(ctx, zap.L()).Warn("record grant audit failed", zap.Error(err))
	}
}

func applyTarget(row *AccessGrant, scopeKey string, companyID, userID, roleID *string) error {
	if !access.KnownPermission(scopeKey) {
		return granterrors.ErrUnknownPermission
	}

	set := 0
	for _, target := range []*string{companyID, userID, roleID} {
		if target != nil && *target != "" {
			set++
		}
	}
	if set > 1 {
		return granterrors.ErrMultipleTargets
	}

	parse := func(v *string) (*uuid.UUID, error) {
		if v == nil || *v == "" {
			return nil, nil
		}
		id, err := uuid.Parse(*v)
		if err != nil {
			return nil, granterrors.ErrInvalidTargetID
		}
		return &id, nil
	}

	var err error
	if row.CompanyID, err = parse(companyID); err != nil {
		return err
	}
	if row.UserID, err = parse(userID); err != nil {
		return err
	}
	if row.RoleID, err = parse(roleID); err != nil {
		return err
	}
	return nil
}

func mapToResponse(row AccessGrant) GrantResponse {
	resp := GrantResponse{
		ID:             row.ID.String(),
		OrganizationID: row.OrganizationID.String(),
		ScopeType:      row.ScopeType,
		ScopeKey:       row.ScopeKey,
		Effect:         row.Effect,
		CreatedBy:      row.CreatedBy.String(),
	}
	if row.CompanyID != nil {
		v := row.CompanyID.String()
		resp.CompanyID = &v
	}
	if row.UserID != nil {
		v := row.UserID.String()
		resp.UserID = &v
	}
	if row.RoleID != nil {
		v := row.RoleID.String()
		resp.RoleID = &v
	}
	return resp
}
