package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amirasaad/minibank/pkg/currency"
	"github.com/amirasaad/minibank/pkg/provider/exchange"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quotes = map[currency.Code]decimal.Decimal{
	currency.RUB: decimal.NewFromInt(1),
	currency.USD: decimal.RequireFromString("91.78"),
	currency.EUR: decimal.RequireFromString("98.22"),
}

type countingSource struct {
	calls  atomic.Int32
	codes  [][]currency.Code
	mu     sync.Mutex
	err    error
	gate   chan struct{}
	result func([]currency.Code) []decimal.Decimal
}

func (s *countingSource) GetRates(_ context.Context, codes []currency.Code) ([]decimal.Decimal, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.codes = append(s.codes, append([]currency.Code(nil), codes...))
	s.mu.Unlock()
	if s.gate != nil {
		<-s.gate
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result(codes), nil
	}
	out := make([]decimal.Decimal, len(codes))
	for i, c := range codes {
		out[i] = quotes[c]
	}
	return out, nil
}

var _ exchange.RateSource = (*countingSource)(nil)

func newCaching(src exchange.RateSource, store RateStore) *CachingRateSource {
	return NewCachingRateSource(src, store, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCachingRateSource_ServesFromStore(t *testing.T) {
	ctx := context.Background()
	src := &countingSource{}
	c := newCaching(src, NewMemoryCache())

	rates, err := c.GetRates(ctx, []currency.Code{currency.USD, currency.EUR})
	require.NoError(t, err)
	assert.True(t, quotes[currency.USD].Equal(rates[0]))
	assert.True(t, quotes[currency.EUR].Equal(rates[1]))

	rates, err = c.GetRates(ctx, []currency.Code{currency.EUR, currency.USD})
	require.NoError(t, err)
	assert.True(t, quotes[currency.EUR].Equal(rates[0]))
	assert.True(t, quotes[currency.USD].Equal(rates[1]))
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestCachingRateSource_FetchesOnlyMisses(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCache()
	require.NoError(t, store.Set(ctx, "USD", quotes[currency.USD], time.Minute))
	src := &countingSource{}
	c := newCaching(src, store)

	rates, err := c.GetRates(ctx, []currency.Code{currency.USD, currency.EUR, currency.EUR})
	require.NoError(t, err)
	require.Len(t, rates, 3)
	assert.True(t, quotes[currency.EUR].Equal(rates[2]))
	require.Len(t, src.codes, 1)
	assert.Equal(t, []currency.Code{currency.EUR}, src.codes[0])
}

func TestCachingRateSource_NeverPartial(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCache()
	require.NoError(t, store.Set(ctx, "USD", quotes[currency.USD], time.Minute))

	t.Run("source error", func(t *testing.T) {
		boom := errors.New("feed down")
		c := newCaching(&countingSource{err: boom}, store)
		rates, err := c.GetRates(ctx, []currency.Code{currency.USD, currency.EUR})
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, rates)
	})

	t.Run("short answer", func(t *testing.T) {
		src := &countingSource{result: func([]currency.Code) []decimal.Decimal { return nil }}
		c := newCaching(src, store)
		rates, err := c.GetRates(ctx, []currency.Code{currency.EUR})
		assert.Error(t, err)
		assert.Nil(t, rates)
		_, ok, _ := store.Get(ctx, "EUR")
		assert.False(t, ok)
	})
}

func TestCachingRateSource_CoalescesConcurrentMisses(t *testing.T) {
	ctx := context.Background()
	src := &countingSource{gate: make(chan struct{})}
	c := newCaching(src, NewMemoryCache())

	const callers = 8
	var wg sync.WaitGroup
	results := make([][]decimal.Decimal, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rates, err := c.GetRates(ctx, []currency.Code{currency.EUR, currency.USD})
			assert.NoError(t, err)
			results[i] = rates
		}()
	}

	require.Eventually(t, func() bool { return src.calls.Load() >= 1 }, time.Second, time.Millisecond)
	// Let the waiting callers join the in-flight call before it returns.
	time.Sleep(20 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
	for _, rates := range results {
		require.Len(t, rates, 2)
		assert.True(t, quotes[currency.EUR].Equal(rates[0]))
		assert.True(t, quotes[currency.USD].Equal(rates[1]))
	}
}
