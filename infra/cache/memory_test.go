package cache

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	_, ok, err := c.Get(ctx, "USD")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "USD", decimal.RequireFromString("91.78"), time.Minute))
	rate, ok, err := c.Get(ctx, "USD")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "91.78", rate.String())

	now = now.Add(time.Minute)
	_, ok, _ = c.Get(ctx, "USD")
	assert.False(t, ok, "entry must expire at its TTL")
	assert.Equal(t, 1, c.Prune())
	assert.Equal(t, 0, c.Prune())

	require.NoError(t, c.Set(ctx, "EUR", decimal.NewFromInt(98), time.Minute))
	require.NoError(t, c.Delete(ctx, "EUR"))
	_, ok, _ = c.Get(ctx, "EUR")
	assert.False(t, ok)
}
