// Package rbac provides the role-default permission tier. Explicit access
// grants are resolved first (internal/access); only when no grant matches
// does enforcement fall back to these per-role defaults.
package rbac

import (
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/access"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const defaultsModel = `
[request_definition]
r = sub, perm

[policy_definition]
p = sub, perm

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.perm == p.perm
`

// roleDefaults maps built-in role keys to the permissions they carry when
// no explicit grant overrides them. Owners and admins get the full catalog.
var roleDefaults = map[string][]string{
	access.RolePayrollAdmin: {
		access.PermEmployeeRead,
		access.PermPayGroupRead,
		access.PermPayGroupManage,
		access.PermPayRunRead,
		access.PermPayRunCreate,
		access.PermPayRunProcess,
		access.PermPayRunApprove,
		access.PermPayRunPay,
		access.PermPayRunDelete,
		access.PermCalculationRun,
		access.PermReportRead,
	},
	access.RoleHRManager: {
		access.PermEmployeeRead,
		access.PermEmployeeCreate,
		access.PermEmployeeUpdate,
		access.PermEmployeeDelete,
		access.PermPayGroupRead,
		access.PermReportRead,
	},
	access.RoleAccountant: {
		access.PermPayRunRead,
		access.PermCalculationRun,
		access.PermReportRead,
	},
	access.RoleEmployee: {},
}

type Defaults struct {
	enforcer *casbin.Enforcer
}

// NewDefaults builds the enforcer and loads the static default policy.
// The policy is immutable after construction; concurrent Enforce calls
// are safe.
func NewDefaults() (*Defaults, error) {
	m, err := model.NewModelFromString(defaultsModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, perm := range access.Catalog() {
		if _, err := enforcer.AddPolicy(access.RoleOrgOwner, perm.Key); err != nil {
			return nil, err
		}
		if _, err := enforcer.AddPolicy(access.RoleOrgAdmin, perm.Key); err != nil {
			return nil, err
		}
	}

	for role, perms := range roleDefaults {
		for _, perm := range perms {
			if _, err := enforcer.AddPolicy(role, perm); err != nil {
				return nil, err
			}
		}
	}

	return &Defaults{enforcer: enforcer}, nil
}

// Allowed reports whether any of the held role keys carries the permission
// by default.
func (d *Defaults) Allowed(roleKeys []string, permissionKey string) (bool, error) {
	for _, role := range roleKeys {
		ok, err := d.enforcer.Enforce(role, permissionKey)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
