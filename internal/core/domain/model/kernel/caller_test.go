package kernel_test

import (
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCaller(t *testing.T) {
	tenant := kernel.NewUUID()

	t.Run("should build a caller for a known role", func(t *testing.T) {
		c, err := kernel.NewCaller(tenant, kernel.RoleOperator)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.TenantID().IsEqual(tenant))
		assert.Equal(t, kernel.RoleOperator, c.Role())
	})

	t.Run("should reject a missing tenant", func(t *testing.T) {
		_, err := kernel.NewCaller(kernel.UUID{}, kernel.RoleAdmin)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should reject an unknown role", func(t *testing.T) {
		_, err := kernel.NewCaller(tenant, kernel.RoleUnknown)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var c kernel.Caller

		require.ErrorIs(t, c.Validate(), kernel.ErrCallerIsNotConstructed)
	})
}

func TestCaller_CanSetFinancials(t *testing.T) {
	tenant := kernel.NewUUID()
	testCases := []struct {
		role     kernel.Role
		expected bool
	}{
		{kernel.RoleAdmin, true},
		{kernel.RoleOperator, true},
		{kernel.RoleSecurity, false},
	}

	for _, tc := range testCases {
		t.Run(tc.role.String(), func(t *testing.T) {
			c, err := kernel.NewCaller(tenant, tc.role)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, c.CanSetFinancials())
		})
	}
}

func TestParseRole(t *testing.T) {
	role, err := kernel.ParseRole(" security ")
	require.NoError(t, err)
	assert.Equal(t, kernel.RoleSecurity, role)

	_, err = kernel.ParseRole("driver")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAmounts(t *testing.T) {
	require.NoError(t, kernel.ValidatePositiveAmount("amount", decimal.NewFromInt(1)))
	require.ErrorIs(t, kernel.ValidatePositiveAmount("amount", decimal.Zero), errs.ErrValueIsInvalid)
	require.NoError(t, kernel.ValidateNonNegativeAmount("expense", decimal.Zero))
	require.ErrorIs(t, kernel.ValidateNonNegativeAmount("expense", decimal.NewFromInt(-1)), errs.ErrValueIsInvalid)

	total := kernel.SumAmounts(decimal.NewFromInt(600), decimal.NewFromInt(500))
	assert.True(t, total.Equal(decimal.NewFromInt(1100)))
}
