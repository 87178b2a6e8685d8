package cache

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/amirasaad/minibank/pkg/currency"
	"github.com/amirasaad/minibank/pkg/provider/exchange"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// CachingRateSource serves rates from a RateStore and asks the wrapped
// source only for the codes it misses. Concurrent misses for the same codes
// share one upstream call. A result is either complete or an error.
type CachingRateSource struct {
	source exchange.RateSource
	store  RateStore
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

var _ exchange.RateSource = (*CachingRateSource)(nil)

// NewCachingRateSource wraps source with store.
func NewCachingRateSource(
	source exchange.RateSource,
	store RateStore,
	ttl time.Duration,
	logger *slog.Logger,
) *CachingRateSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingRateSource{
		source: source,
		store:  store,
		ttl:    ttl,
		logger: logger.With("component", "rate_cache"),
	}
}

func (c *CachingRateSource) GetRates(ctx context.Context, codes []currency.Code) ([]decimal.Decimal, error) {
	rates := make([]decimal.Decimal, len(codes))
	var missing []currency.Code
	for i, code := range codes {
		rate, ok, err := c.store.Get(ctx, code.String())
		if err != nil {
			c.logger.Warn("Rate cache read failed", "code", code, "error", err)
		}
		if err != nil || !ok {
			if !slices.Contains(missing, code) {
				missing = append(missing, code)
			}
			continue
		}
		rates[i] = rate
	}
	if len(missing) == 0 {
		return rates, nil
	}

	fetched, err := c.fetch(ctx, missing)
	if err != nil {
		return nil, err
	}
	for i, code := range codes {
		if rate, ok := fetched[code]; ok {
			rates[i] = rate
		}
	}
	return rates, nil
}

func (c *CachingRateSource) fetch(ctx context.Context, codes []currency.Code) (map[currency.Code]decimal.Decimal, error) {
	slices.Sort(codes)
	names := make([]string, len(codes))
	for i, code := range codes {
		names[i] = code.String()
	}
	key := strings.Join(names, ",")

	v, err, shared := c.group.Do(key, func() (any, error) {
		rates, err := c.source.GetRates(ctx, codes)
		if err != nil {
			return nil, err
		}
		if len(rates) != len(codes) {
			return nil, fmt.Errorf("rate source returned %d rates for %d codes", len(rates), len(codes))
		}
		byCode := make(map[currency.Code]decimal.Decimal, len(codes))
		for i, code := range codes {
			byCode[code] = rates[i]
			if err := c.store.Set(ctx, code.String(), rates[i], c.ttl); err != nil {
				c.logger.Warn("Rate cache write failed", "code", code, "error", err)
			}
		}
		return byCode, nil
	})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Rates fetched", "codes", key, "shared", shared)
	return v.(map[currency.Code]decimal.Decimal), nil
}
