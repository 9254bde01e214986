// Package openlibrary provides a client for the Open Library search API,
// used for book discovery.
package openlibrary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pageturnapp/pageturn-server/internal/ratelimit"
)

const (
	defaultBaseURL = "https://openlibrary.org"

	// Open Library asks clients to stay under 1 request per second sustained.
	defaultRPS   = 1.0
	defaultBurst = 5

	defaultTimeout = 30 * time.Second

	limiterKey = "openlibrary"
)

// Sentinel errors for Open Library API operations.
var (
	ErrNotFound    = errors.New("openlibrary: not found")
	ErrRateLimited = errors.New("openlibrary: rate limited by server")
	ErrServer      = errors.New("openlibrary: server error")
)

// Client is a rate-limited Open Library API client.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	baseURL string
	logger  *slog.Logger
}

// New creates a new Open Library client.
func New(logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		baseURL: defaultBaseURL,
		logger:  logger,
	}
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// doRequest executes an HTTP GET with rate limiting.
func (c *Client) doRequest(ctx context.Context, pathAndQuery string) ([]byte, error) {
	if err := c.limiter.Wait(ctx, limiterKey); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathAndQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "PageTurn/1.0")

	c.logger.Debug("openlibrary request", "path", pathAndQuery)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, ErrServer
	default:
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}
