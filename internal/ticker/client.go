package ticker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"
)

// DefaultURL is the public Binance price ticker endpoint.
const DefaultURL = "https://api.binance.com/api/v3/ticker/price"

var (
	// ErrNetwork covers transport failures, timeouts and non-2xx replies.
	ErrNetwork = errors.New("network_error")
	// ErrParse covers bodies without a usable numeric price.
	ErrParse = errors.New("parse_error")
)

// KindOf reports the failure kind of an error returned by Fetch or GetPrice.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrParse):
		return ErrParse.Error()
	default:
		return ErrNetwork.Error()
	}
}

// Client queries the ticker endpoint once per tracked symbol.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a client for the given ticker endpoint.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 2 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch requests every tracked symbol in order. Any failure aborts the
// whole fetch so callers never see a half-updated quote.
func (c *Client) Fetch(ctx context.Context) (Quote, error) {
	var q Quote
	for _, p := range TrackedPairs {
		price, err := c.GetPrice(ctx, p.Symbol)
		if err != nil {
			return Quote{}, err
		}
		switch p.Asset {
		case BTC:
			q.BTC = price
		case ETH:
			q.ETH = price
		}
	}
	return q, nil
}

// GetPrice returns the last traded price for a single symbol.
func (c *Client) GetPrice(ctx context.Context, symbol string) (float64, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return 0, fmt.Errorf("%w: bad ticker url %q: %v", ErrNetwork, c.baseURL, err)
	}
	q := u.Query()
	q.Set("symbol", symbol)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: build request [%s]: %v", ErrNetwork, symbol, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: HTTP request failed [%s]: %v", ErrNetwork, symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("%w: API error [%s]: %s - %s", ErrNetwork, symbol, resp.Status, string(bodyBytes))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: body read error [%s]: %v", ErrNetwork, symbol, err)
	}

	var priceResp Response
	if err := json.Unmarshal(body, &priceResp); err != nil {
		return 0, fmt.Errorf("%w: JSON parse error [%s]: %v, Received Data: %s", ErrParse, symbol, err, string(body))
	}
	if priceResp.Price == nil {
		return 0, fmt.Errorf("%w: missing price [%s], Received Data: %s", ErrParse, symbol, string(body))
	}

	price := priceResp.Price.InexactFloat64()
	if math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: price out of range [%s]: %s", ErrParse, symbol, priceResp.Price.String())
	}
	return price, nil
}
