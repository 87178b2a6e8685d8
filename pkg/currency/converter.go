package currency

import (
	"context"

	"github.com/shopspring/decimal"
)

// Converter converts an amount between currencies. The result is not rounded.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to Code) (decimal.Decimal, error)
}
