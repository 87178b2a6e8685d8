package account

import (
	"testing"
	"time"

	"github.com/amirasaad/minibank/pkg/currency"
	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		a, err := New().WithUserID("u1").Build()
		require.NoError(t, err)
		assert.NotEmpty(t, a.ID)
		assert.Equal(t, currency.RUB, a.Currency)
		assert.True(t, a.IsActive)
		assert.True(t, a.Balance.IsZero())
		assert.Nil(t, a.ClosedAt)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := New().Build()
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("negative balance", func(t *testing.T) {
		_, err := New().WithUserID("u1").WithBalance(decimal.NewFromInt(-1)).Build()
		reason, ok := domain.Reason(err)
		require.True(t, ok)
		assert.Equal(t, "enter a non-negative value", reason)
	})

	t.Run("closed", func(t *testing.T) {
		at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		a, err := New().WithUserID("u1").WithClosedAt(at).Build()
		require.NoError(t, err)
		assert.False(t, a.IsActive)
		require.NotNil(t, a.ClosedAt)
		assert.Equal(t, at, *a.ClosedAt)
	})
}

func TestValidateClose(t *testing.T) {
	open, _ := New().WithID("a1").WithUserID("u1").Build()
	assert.NoError(t, open.ValidateClose())

	funded, _ := New().WithID("a2").WithUserID("u1").WithBalance(decimal.RequireFromString("0.01")).Build()
	reason, _ := domain.Reason(funded.ValidateClose())
	assert.Equal(t, "account with non-zero balance cannot be closed", reason)

	closed, _ := New().WithID("a3").WithUserID("u1").WithClosedAt(time.Now()).Build()
	reason, _ = domain.Reason(closed.ValidateClose())
	assert.Equal(t, "account a3 already closed", reason)
}
