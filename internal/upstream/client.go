// Package upstream fetches raw payloads from the legacy trip backend.
//
// This layer does no decoding: it hands bytes to the wire package exactly as
// the backend sent them, so the normalization core sees every historical
// shape unmodified. Transient failures (transport errors, 5xx) are retried
// with fibonacci backoff; 404s map to domain.ErrNotFound.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/pkordes/rv-companion/internal/domain"
)

// maxBodySize caps how much of an upstream response is read. The largest
// observed itinerary payloads are well under 1 MiB.
const maxBodySize = 4 << 20

// Client fetches raw JSON from the legacy backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries uint64
	backoff    time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client (e.g. for tests or
// custom transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetries sets the retry count and initial backoff for transient
// failures.
func WithRetries(max uint64, backoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = max
		c.backoff = backoff
	}
}

// NewClient constructs a Client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		maxRetries: 3,
		backoff:    250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchItinerary returns the raw itinerary payload for the household.
func (c *Client) FetchItinerary(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "/api/trip/itinerary")
}

// FetchChecklist returns the raw payload for one checklist.
func (c *Client) FetchChecklist(ctx context.Context, id string) ([]byte, error) {
	return c.get(ctx, "/api/checklists/"+url.PathEscape(id))
}

// FetchChecklistRun returns the raw payload for one dated checklist run.
func (c *Client) FetchChecklistRun(ctx context.Context, id string) ([]byte, error) {
	return c.get(ctx, "/api/checklist-runs/"+url.PathEscape(id))
}

// FetchParkDetail returns the raw detail payload for one park.
func (c *Client) FetchParkDetail(ctx context.Context, id string) ([]byte, error) {
	return c.get(ctx, "/api/parks/"+url.PathEscape(id))
}

// FetchMembers returns the raw household member list.
func (c *Client) FetchMembers(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "/api/members")
}

// get performs a GET with retry on transport errors and 5xx responses.
// Non-retryable statuses fail immediately.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	var body []byte

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewFibonacci(c.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("upstream.Client.get %s: %w", path, err))
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
			if err != nil {
				return retry.RetryableError(fmt.Errorf("upstream.Client.get %s: read body: %w", path, err))
			}
			return nil
		case resp.StatusCode == http.StatusNotFound:
			return fmt.Errorf("upstream.Client.get %s: %w", path, domain.ErrNotFound)
		case resp.StatusCode >= 500:
			return retry.RetryableError(fmt.Errorf("upstream.Client.get %s: status %d", path, resp.StatusCode))
		default:
			return fmt.Errorf("upstream.Client.get %s: unexpected status %d", path, resp.StatusCode)
		}
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}
