// Package cbr reads exchange rates from the Central Bank of Russia daily
// JSON feed. Every rate is quoted in rubles per one unit of the currency.
package cbr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/amirasaad/minibank/pkg/config"
	"github.com/amirasaad/minibank/pkg/currency"
	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/provider/exchange"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/shopspring/decimal"
)

// SourceName identifies the feed in ExternalDependency errors.
const SourceName = "cbr"

// DailyResponse is the subset of daily_json.js the client reads.
// Example: {"Date":"2024-05-01T11:30:00+03:00","Valute":{"USD":{"Nominal":1,"Value":91.7791}}}
type DailyResponse struct {
	Date   string            `json:"Date"`
	Valute map[string]Valute `json:"Valute"`
}

type Valute struct {
	CharCode string          `json:"CharCode"`
	Nominal  int64           `json:"Nominal"`
	Value    decimal.Decimal `json:"Value"`
}

// Client implements exchange.RateSource against the CBR feed.
type Client struct {
	url    string
	http   *retryablehttp.Client
	logger *slog.Logger
}

var _ exchange.RateSource = (*Client)(nil)

type Option func(*Client)

// WithRetryWait bounds the backoff between retries.
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.http.RetryWaitMin = minWait
		c.http.RetryWaitMax = maxWait
	}
}

// New creates a Client for cfg. Transport errors and 5xx responses are
// retried up to cfg.MaxRetries times.
func New(cfg *config.Cbr, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("provider", SourceName)

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.MaxRetries
	rc.HTTPClient.Timeout = cfg.HTTPTimeout
	rc.Logger = logger

	c := &Client{url: cfg.Url, http: rc, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetRates fetches the feed once and returns the rate of each code, in
// order. The base currency is always 1.
func (c *Client) GetRates(ctx context.Context, codes []currency.Code) ([]decimal.Decimal, error) {
	logger := c.logger.With("codes", codes)
	logger.Debug("GetRates started")

	daily, err := c.fetch(ctx)
	if err != nil {
		logger.Error("GetRates failed: fetch", "error", err)
		return nil, domain.NewExternalDependency(SourceName, err)
	}

	rates := make([]decimal.Decimal, len(codes))
	for i, code := range codes {
		rate, err := daily.rate(code)
		if err != nil {
			logger.Error("GetRates failed: missing rate", "error", err)
			return nil, domain.NewExternalDependency(SourceName, err)
		}
		rates[i] = rate
	}
	logger.Debug("GetRates successful", "date", daily.Date)
	return rates, nil
}

func (c *Client) fetch(ctx context.Context) (*DailyResponse, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("feed returned status %d: %s", resp.StatusCode, string(body))
	}

	var daily DailyResponse
	if err := json.NewDecoder(resp.Body).Decode(&daily); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &daily, nil
}

func (r *DailyResponse) rate(code currency.Code) (decimal.Decimal, error) {
	if code == currency.Base {
		return decimal.NewFromInt(1), nil
	}
	v, ok := r.Valute[code.String()]
	if !ok {
		return decimal.Zero, fmt.Errorf("currency %s not found in feed", code)
	}
	if v.Nominal <= 0 || !v.Value.IsPositive() {
		return decimal.Zero, fmt.Errorf("currency %s has invalid quote %s/%d", code, v.Value, v.Nominal)
	}
	return v.Value.Div(decimal.NewFromInt(v.Nominal)).Round(2), nil
}
