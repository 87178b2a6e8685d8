package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/minibank/internal/fixtures/mocks"
	"github.com/amirasaad/minibank/pkg/config"
	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/amirasaad/minibank/pkg/domain/transfer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNew_UsesConfiguredCommissionRate(t *testing.T) {
	uow := mocks.NewMockUnitOfWork(t)
	accounts := mocks.NewMockAccountRepository(t)
	rates := mocks.NewMockRateSource(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	from, err := account.New().WithUserID("u1").WithBalance(decimal.NewFromInt(100)).Build()
	require.NoError(t, err)
	to, err := account.New().WithUserID("u2").Build()
	require.NoError(t, err)

	uow.On("AccountRepository").Return(accounts, nil)
	accounts.On("Get", mock.Anything, from.ID).Return(from, nil)
	accounts.On("Get", mock.Anything, to.ID).Return(to, nil)

	a := New(&Deps{Uow: uow, RateSource: rates, Logger: logger}, &config.App{Fee: &config.Fee{CommissionRate: 0.05}})
	require.NotNil(t, a.AccountService)
	require.NotNil(t, a.UserService)
	require.NotNil(t, a.CurrencyService)

	commission, err := a.AccountService.CalculateCommission(context.Background(), transfer.Request{
		Amount:        decimal.NewFromInt(10),
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "0.50", commission.StringFixed(2))
}
