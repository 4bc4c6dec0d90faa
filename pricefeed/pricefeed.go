// Package pricefeed fetches the token's USD rate from a
// CoinGecko-style simple-price endpoint. The feed is best effort: any
// failure degrades to rate-unknown and callers omit USD figures.
package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// Client queries the price API for one asset.
type Client struct {
	baseURL string
	asset   string
	client  *http.Client
}

// Option adjusts client construction.
type Option func(*Client)

// WithBaseURL points the client at a different API host.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// New creates a price client for the given asset id, e.g. "kpg-token".
func New(asset string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		asset:   asset,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// USDRate fetches the current USD rate for the asset. A zero rate with
// nil error never happens; failures return 0 and an error, and callers
// treat both identically as rate-unknown.
func (c *Client) USDRate(ctx context.Context) (float64, error) {
	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		c.baseURL, url.QueryEscape(c.asset))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build price request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch price: status %d", resp.StatusCode)
	}

	var body map[string]struct {
		USD float64 `json:"usd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode price: %w", err)
	}

	entry, ok := body[c.asset]
	if !ok || entry.USD <= 0 {
		return 0, fmt.Errorf("no usd rate for %s", c.asset)
	}
	return entry.USD, nil
}
