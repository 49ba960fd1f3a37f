package access_test

import (
	"testing"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/access"

	"github.com/stretchr/testify/assert"
)

func actionGrant(key string, effect access.Effect) access.Grant {
	return access.Grant{ScopeType: access.ScopeAction, ScopeKey: key, Effect: effect}
}

func TestResolve_DenyOverridesAllow(t *testing.T) {
	roleGrant := actionGrant(access.PermPayRunApprove, access.EffectAllow)
	roleGrant.RoleID = "role-payroll"

	userGrant := actionGrant(access.PermPayRunApprove, access.EffectDeny)
	userGrant.UserID = "user-1"

	// A user both in the allowed role and explicitly denied must be denied,
	// whichever order the grants arrive in.
	ctx := access.Context{UserID: "user-1", RoleIDs: []string{"role-payroll"}}

	decision := access.Resolve([]access.Grant{roleGrant, userGrant}, ctx, access.PermPayRunApprove)
	assert.Equal(t, access.DecisionDeny, decision)

	decision = access.Resolve([]access.Grant{userGrant, roleGrant}, ctx, access.PermPayRunApprove)
	assert.Equal(t, access.DecisionDeny, decision)
}

func TestResolve_CompanyScopeNarrowing(t *testing.T) {
	orgWide := actionGrant(access.PermPayRunRead, access.EffectAllow)

	companyDeny := actionGrant(access.PermPayRunRead, access.EffectDeny)
	companyDeny.CompanyID = "company-a"

	grants := []access.Grant{orgWide, companyDeny}

	inCompanyA := access.Context{UserID: "user-1", CompanyID: "company-a"}
	assert.Equal(t, access.DecisionDeny, access.Resolve(grants, inCompanyA, access.PermPayRunRead))

	// The company-a deny must not leak into company-b; the org-wide allow
	// still applies there.
	inCompanyB := access.Context{UserID: "user-1", CompanyID: "company-b"}
	assert.Equal(t, access.DecisionAllow, access.Resolve(grants, inCompanyB, access.PermPayRunRead))
}

func TestResolve_UnsetWhenNothingMatches(t *testing.T) {
	otherKey := actionGrant(access.PermReportRead, access.EffectAllow)

	otherUser := actionGrant(access.PermPayRunRead, access.EffectAllow)
	otherUser.UserID = "someone-else"

	otherRole := actionGrant(access.PermPayRunRead, access.EffectDeny)
	otherRole.RoleID = "role-x"

	ctx := access.Context{UserID: "user-1", RoleIDs: []string{"role-y"}}
	decision := access.Resolve([]access.Grant{otherKey, otherUser, otherRole}, ctx, access.PermPayRunRead)
	assert.Equal(t, access.DecisionUnset, decision)

	assert.Equal(t, access.DecisionUnset, access.Resolve(nil, ctx, access.PermPayRunRead))
}

func TestResolve_UntargetedGrantAppliesToEveryone(t *testing.T) {
	allowAll := actionGrant(access.PermEmployeeRead, access.EffectAllow)

	ctx := access.Context{UserID: "anyone", CompanyID: "company-z"}
	assert.Equal(t, access.DecisionAllow, access.Resolve([]access.Grant{allowAll}, ctx, access.PermEmployeeRead))
}

func TestResolve_RoleTargetedGrant(t *testing.T) {
	grant := actionGrant(access.PermEmployeeUpdate, access.EffectAllow)
	grant.RoleID = "role-hr"

	holder := access.Context{UserID: "u1", RoleIDs: []string{"role-other", "role-hr"}}
	assert.Equal(t, access.DecisionAllow, access.Resolve([]access.Grant{grant}, holder, access.PermEmployeeUpdate))

	nonHolder := access.Context{UserID: "u2", RoleIDs: []string{"role-other"}}
	assert.Equal(t, access.DecisionUnset, access.Resolve([]access.Grant{grant}, nonHolder, access.PermEmployeeUpdate))
}

func TestPrimaryRole(t *testing.T) {
	assert.Equal(t, access.RoleOrgOwner, access.PrimaryRole([]string{access.RoleEmployee, access.RoleOrgOwner}))
	assert.Equal(t, access.RolePayrollAdmin, access.PrimaryRole([]string{access.RolePayrollAdmin, access.RoleAccountant}))
	assert.Equal(t, "CUSTOM_ROLE", access.PrimaryRole([]string{"CUSTOM_ROLE"}))
	assert.Equal(t, "", access.PrimaryRole(nil))
}

func TestCatalog(t *testing.T) {
	assert.True(t, access.KnownPermission(access.PermPayRunApprove))
	assert.False(t, access.KnownPermission("payrun.unknown"))

	entries := access.Catalog()
	assert.NotEmpty(t, entries)
	for _, p := range entries {
		assert.NotEmpty(t, p.Key)
		assert.NotEmpty(t, p.Label)
	}
}
