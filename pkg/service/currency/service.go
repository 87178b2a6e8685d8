// Package currency converts amounts between the supported currencies using
// rates from an exchange.RateSource.
package currency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/minibank/pkg/currency"
	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/provider/exchange"
	"github.com/shopspring/decimal"
)

const rateSourceName = "exchange rate source"

// Converter implements currency.Converter on top of a RateSource.
type Converter struct {
	rates  exchange.RateSource
	logger *slog.Logger
}

var _ currency.Converter = (*Converter)(nil)

// NewConverter creates a Converter reading rates from rates.
func NewConverter(rates exchange.RateSource, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{rates: rates, logger: logger}
}

// Convert returns amount / rate(to) * rate(from). Rates for both currencies
// are always fetched, in the order [from, to], so a failing source is
// reported even when from == to.
func (c *Converter) Convert(
	ctx context.Context,
	amount decimal.Decimal,
	from, to currency.Code,
) (decimal.Decimal, error) {
	logger := c.logger.With("amount", amount.String(), "from", from, "to", to)
	if amount.IsNegative() {
		logger.Error("Convert failed: negative amount")
		return decimal.Zero, domain.NewValidation("enter a non-negative value")
	}

	rates, err := c.rates.GetRates(ctx, []currency.Code{from, to})
	if err != nil {
		logger.Error("Convert failed: rate source error", "error", err)
		if errors.Is(err, domain.ErrExternalDependency) {
			return decimal.Zero, err
		}
		return decimal.Zero, domain.NewExternalDependency(rateSourceName, err)
	}
	if len(rates) != 2 {
		err = fmt.Errorf("expected 2 rates, got %d", len(rates))
		logger.Error("Convert failed: incomplete rate set", "error", err)
		return decimal.Zero, domain.NewExternalDependency(rateSourceName, err)
	}
	fromRate, toRate := rates[0], rates[1]
	if !fromRate.IsPositive() || !toRate.IsPositive() {
		err = fmt.Errorf("non-positive rate %s/%s", fromRate, toRate)
		logger.Error("Convert failed: invalid rate", "error", err)
		return decimal.Zero, domain.NewExternalDependency(rateSourceName, err)
	}

	// Multiplying first keeps amount*r/r exact for the identity conversion.
	converted := amount.Mul(fromRate).Div(toRate)
	logger.Debug("Convert successful", "converted", converted.String())
	return converted, nil
}
