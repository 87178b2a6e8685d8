// Package exchange defines where exchange rates come from.
package exchange

import (
	"context"

	"github.com/amirasaad/minibank/pkg/currency"
	"github.com/shopspring/decimal"
)

// RateSource returns, for each requested code, its rate against currency.Base
// rounded to 2 decimal places. The result has the same length and order as
// codes. Implementations fail with a domain.ErrExternalDependency error rather
// than return partial data.
type RateSource interface {
	GetRates(ctx context.Context, codes []currency.Code) ([]decimal.Decimal, error)
}

// RateSourceFunc adapts a function to RateSource.
type RateSourceFunc func(ctx context.Context, codes []currency.Code) ([]decimal.Decimal, error)

func (f RateSourceFunc) GetRates(ctx context.Context, codes []currency.Code) ([]decimal.Decimal, error) {
	return f(ctx, codes)
}
