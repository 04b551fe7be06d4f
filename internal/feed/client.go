// Package feed provides the HTTP client for the price and signal endpoints.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	pricePath  = "/api/btc-price"
	signalPath = "/api/coinalyze-scalp"
)

// Payload is a loosely typed endpoint response. The endpoints return
// heterogeneous JSON shapes; field resolution happens in the report
// normalizer, not here.
type Payload map[string]any

// Client provides access to the braincast data endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a feed client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchPrice retrieves the current BTC price payload.
func (c *Client) FetchPrice(ctx context.Context) (Payload, error) {
	return c.get(ctx, pricePath)
}

// FetchSignal retrieves the current scalp signal payload.
func (c *Client) FetchSignal(ctx context.Context) (Payload, error) {
	return c.get(ctx, signalPath)
}

// get performs a single GET request. Failures are not retried; the caller
// degrades to fallback values instead.
func (c *Client) get(ctx context.Context, path string) (Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	var payload Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	return payload, nil
}
