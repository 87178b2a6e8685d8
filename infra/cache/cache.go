// Package cache keeps recently fetched exchange rates so that conversions
// do not hit the rate feed on every request.
package cache

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateStore holds rates by key until their TTL elapses. A miss is reported
// with ok == false and a nil error.
type RateStore interface {
	Get(ctx context.Context, key string) (rate decimal.Decimal, ok bool, err error)
	Set(ctx context.Context, key string, rate decimal.Decimal, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
