// Package access implements the organization access-grant model: explicit
// allow/deny overrides on named permissions, scoped to a company, a user or
// a role, resolved with deny-overrides-allow precedence. Resolution is a
// pure fold over the grant list; persistence lives in the grant module.
package access

type Effect string

const (
	EffectAllow Effect = "allow"
	EffectDeny  Effect = "deny"
)

type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionDeny  Decision = "deny"
	// DecisionUnset means no grant matched; the caller falls back to
	// role-default permissions.
	DecisionUnset Decision = "unset"
)

type ScopeType string

const ScopeAction ScopeType = "action"

// Grant is one allow/deny rule belonging to an organization. At most one of
// CompanyID, UserID and RoleID may be set; an empty target means the grant
// applies to every eligible user. The latest row set is authoritative.
type Grant struct {
	ID             string
	OrganizationID string
	ScopeType      ScopeType
	ScopeKey       string
	Effect         Effect
	CompanyID      string
	UserID         string
	RoleID         string
}

// Context identifies the subject a permission check runs for.
type Context struct {
	UserID    string
	RoleIDs   []string
	CompanyID string
}

// Resolve computes the effective decision for one permission key. An
// explicit deny at any applicable scope wins over any allow, regardless of
// scope specificity or role precedence: a restriction on payroll actions
// must never be silently outranked by a broader allowance.
func Resolve(grants []Grant, ctx Context, permissionKey string) Decision {
	var anyAllow bool

	for _, grant := range grants {
		if !applies(grant, ctx, permissionKey) {
			continue
		}
		if grant.Effect == EffectDeny {
			return DecisionDeny
		}
		anyAllow = true
	}

	if anyAllow {
		return DecisionAllow
	}
	return DecisionUnset
}

func applies(grant Grant, ctx Context, permissionKey string) bool {
	if grant.ScopeType != ScopeAction || grant.ScopeKey != permissionKey {
		return false
	}

	// Company-scoped grants only reach members acting in that company;
	// grants without a company apply organization-wide.
	if grant.CompanyID != "" && grant.CompanyID != ctx.CompanyID {
		return false
	}

	switch {
	case grant.UserID != "":
		return grant.UserID == ctx.UserID
	case grant.RoleID != "":
		for _, roleID := range ctx.RoleIDs {
			if roleID == grant.RoleID {
				return true
			}
		}
		return false
	default:
		return true
	}
}
