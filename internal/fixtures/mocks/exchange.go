package mocks

import (
	"context"

	"github.com/amirasaad/minibank/pkg/currency"
	"github.com/amirasaad/minibank/pkg/provider/exchange"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockConverter is a mock of currency.Converter.
type MockConverter struct {
	mock.Mock
}

var _ currency.Converter = (*MockConverter)(nil)

func NewMockConverter(t testingT) *MockConverter {
	m := &MockConverter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockConverter) Convert(
	ctx context.Context,
	amount decimal.Decimal,
	from, to currency.Code,
) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockRateSource is a mock of exchange.RateSource.
type MockRateSource struct {
	mock.Mock
}

var _ exchange.RateSource = (*MockRateSource)(nil)

func NewMockRateSource(t testingT) *MockRateSource {
	m := &MockRateSource{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRateSource) GetRates(ctx context.Context, codes []currency.Code) ([]decimal.Decimal, error) {
	args := m.Called(ctx, codes)
	rates, _ := args.Get(0).([]decimal.Decimal)
	return rates, args.Error(1)
}
