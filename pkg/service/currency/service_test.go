package currency

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/minibank/pkg/currency"
	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) GetRates(ctx context.Context, codes []currency.Code) ([]decimal.Decimal, error) {
	args := m.Called(ctx, codes)
	rates, _ := args.Get(0).([]decimal.Decimal)
	return rates, args.Error(1)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newConverter(src *MockRateSource) *Converter {
	return NewConverter(src, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestConvert(t *testing.T) {
	ctx := context.Background()

	t.Run("cross rate", func(t *testing.T) {
		src := new(MockRateSource)
		src.On("GetRates", ctx, []currency.Code{currency.USD, currency.EUR}).
			Return([]decimal.Decimal{dec("90"), dec("100")}, nil).Once()

		got, err := newConverter(src).Convert(ctx, dec("10"), currency.USD, currency.EUR)
		require.NoError(t, err)
		assert.True(t, dec("9").Equal(got), got.String())
		src.AssertExpectations(t)
	})

	t.Run("to base currency", func(t *testing.T) {
		src := new(MockRateSource)
		src.On("GetRates", ctx, []currency.Code{currency.USD, currency.RUB}).
			Return([]decimal.Decimal{dec("92.51"), dec("1")}, nil)

		got, err := newConverter(src).Convert(ctx, dec("2"), currency.USD, currency.RUB)
		require.NoError(t, err)
		assert.True(t, dec("185.02").Equal(got), got.String())
	})

	t.Run("result is not rounded", func(t *testing.T) {
		src := new(MockRateSource)
		src.On("GetRates", ctx, []currency.Code{currency.RUB, currency.USD}).
			Return([]decimal.Decimal{dec("1"), dec("80")}, nil)

		got, err := newConverter(src).Convert(ctx, dec("1"), currency.RUB, currency.USD)
		require.NoError(t, err)
		assert.True(t, dec("0.0125").Equal(got), got.String())
	})

	t.Run("identity", func(t *testing.T) {
		for _, amount := range []string{"0", "4.9", "1234.56", "0.01", "98.7654321"} {
			src := new(MockRateSource)
			src.On("GetRates", ctx, []currency.Code{currency.EUR, currency.EUR}).
				Return([]decimal.Decimal{dec("99.37"), dec("99.37")}, nil)

			got, err := newConverter(src).Convert(ctx, dec(amount), currency.EUR, currency.EUR)
			require.NoError(t, err)
			assert.True(t, dec(amount).Equal(got), "amount %s got %s", amount, got)
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		src := new(MockRateSource)
		_, err := newConverter(src).Convert(ctx, dec("-0.01"), currency.USD, currency.EUR)
		reason, ok := domain.Reason(err)
		require.True(t, ok)
		assert.Equal(t, "enter a non-negative value", reason)
		src.AssertNotCalled(t, "GetRates", mock.Anything, mock.Anything)
	})

	t.Run("source failure", func(t *testing.T) {
		src := new(MockRateSource)
		src.On("GetRates", ctx, mock.Anything).Return(nil, errors.New("dial tcp: refused"))

		_, err := newConverter(src).Convert(ctx, dec("1"), currency.USD, currency.EUR)
		assert.ErrorIs(t, err, domain.ErrExternalDependency)
	})

	t.Run("source failure already classified", func(t *testing.T) {
		cause := domain.NewExternalDependency("cbr", errors.New("503"))
		src := new(MockRateSource)
		src.On("GetRates", ctx, mock.Anything).Return(nil, cause)

		_, err := newConverter(src).Convert(ctx, dec("1"), currency.USD, currency.EUR)
		assert.Same(t, cause, err)
	})

	t.Run("incomplete rate set", func(t *testing.T) {
		src := new(MockRateSource)
		src.On("GetRates", ctx, mock.Anything).Return([]decimal.Decimal{dec("90")}, nil)

		_, err := newConverter(src).Convert(ctx, dec("1"), currency.USD, currency.EUR)
		assert.ErrorIs(t, err, domain.ErrExternalDependency)
	})

	t.Run("zero rate is never used", func(t *testing.T) {
		src := new(MockRateSource)
		src.On("GetRates", ctx, mock.Anything).Return([]decimal.Decimal{dec("90"), decimal.Zero}, nil)

		_, err := newConverter(src).Convert(ctx, dec("1"), currency.USD, currency.EUR)
		assert.ErrorIs(t, err, domain.ErrExternalDependency)
	})
}
