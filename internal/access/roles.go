package access

const (
	RoleOrgOwner     = "ORG_OWNER"
	RoleOrgAdmin     = "ORG_ADMIN"
	RolePayrollAdmin = "PAYROLL_ADMIN"
	RoleHRManager    = "HR_MANAGER"
	RoleAccountant   = "ACCOUNTANT"
	RoleEmployee     = "EMPLOYEE"
)

// rolePrecedence orders role keys from most to least privileged. Used only
// to pick a display role when a user holds several; it never influences
// grant resolution.
var rolePrecedence = []string{
	RoleOrgOwner,
	RoleOrgAdmin,
	RolePayrollAdmin,
	RoleHRManager,
	RoleAccountant,
	RoleEmployee,
}

// PrimaryRole picks the highest-precedence role key a user holds. Unknown
// keys rank below every known one; with no known key the first assigned
// role is returned as-is.
func PrimaryRole(roleKeys []string) string {
	if len(roleKeys) == 0 {
		return ""
	}

	for _, candidate := range rolePrecedence {
		for _, held := range roleKeys {
			if held == candidate {
				return candidate
			}
		}
	}
	return roleKeys[0]
}
