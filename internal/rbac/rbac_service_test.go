package rbac_test

import (
	"testing"

	"github.com/galuhpradipta/aplikasi-cuti-karyawan/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func hierarchyService(t *testing.T) rbac.Service {
	t.Helper()

	svc, err := rbac.NewService(
		[]rbac.Policy{
			{Role: "EMPLOYEE", Resource: "leave_request", Action: "write"},
			{Role: "DIVISION_HEAD", Resource: "approval", Action: "decide"},
			{Role: "HRD", Resource: "leave_type", Action: "manage"},
		},
		[]rbac.Grouping{
			{Child: "DIVISION_HEAD", Parent: "EMPLOYEE"},
			{Child: "HRD", Parent: "DIVISION_HEAD"},
			{Child: "DIRECTOR", Parent: "HRD"},
		},
	)
	assert.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := hierarchyService(t)

	t.Run("success direct grant", func(t *testing.T) {
		ok, err := svc.Enforce("EMPLOYEE", "leave_request", "write")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("success inherited through the hierarchy", func(t *testing.T) {
		for _, role := range []string{"DIVISION_HEAD", "HRD", "DIRECTOR"} {
			ok, err := svc.Enforce(role, "leave_request", "write")
			assert.NoError(t, err)
			assert.True(t, ok, role)
		}

		ok, err := svc.Enforce("DIRECTOR", "leave_type", "manage")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("negative grants never flow downward", func(t *testing.T) {
		ok, err := svc.Enforce("EMPLOYEE", "approval", "decide")
		assert.NoError(t, err)
		assert.False(t, ok)

		ok, err = svc.Enforce("DIVISION_HEAD", "leave_type", "manage")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("negative unknown role has no access", func(t *testing.T) {
		ok, err := svc.Enforce("INTERN", "leave_request", "write")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
