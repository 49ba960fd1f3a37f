package rbac_test

import (
	"testing"

	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/access"
	"github.com/Q-Sourcing/payrun-pro-staging-sub003/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func TestDefaults_Allowed(t *testing.T) {
	defaults, err := rbac.NewDefaults()
	assert.NoError(t, err)

	t.Run("owner has full catalog", func(t *testing.T) {
		for _, perm := range access.Catalog() {
			ok, err := defaults.Allowed([]string{access.RoleOrgOwner}, perm.Key)
			assert.NoError(t, err)
			assert.True(t, ok, perm.Key)
		}
	})

	t.Run("payroll admin can approve but not manage grants", func(t *testing.T) {
		ok, err := defaults.Allowed([]string{access.RolePayrollAdmin}, access.PermPayRunApprove)
		assert.NoError(t, err)
		assert.True(t, ok)

		ok, err = defaults.Allowed([]string{access.RolePayrollAdmin}, access.PermGrantManage)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("any held role suffices", func(t *testing.T) {
		ok, err := defaults.Allowed([]string{access.RoleEmployee, access.RoleAccountant}, access.PermReportRead)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("plain employee denied by default", func(t *testing.T) {
		ok, err := defaults.Allowed([]string{access.RoleEmployee}, access.PermPayRunRead)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
