// Package isbndb provides a rate-limited client for the ISBNdb book metadata API.
package isbndb

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pageturnapp/pageturn-server/internal/ratelimit"
)

const (
	defaultBaseURL = "https://api2.isbndb.com"

	// Rate limit: 1 request per second, burst of 3 (ISBNdb basic plan).
	defaultRPS   = 1.0
	defaultBurst = 3

	defaultTimeout = 30 * time.Second

	// limiterKey: one upstream, one bucket.
	limiterKey = "isbndb"
)

// Book is the subset of ISBNdb book metadata this service consumes.
type Book struct {
	Title    string
	Authors  []string
	Subjects []string
}

// Client is a rate-limited ISBNdb API client.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

// New creates a new ISBNdb client. An empty apiKey yields a client whose
// lookups fail with ErrNoAPIKey; callers treat that like any other per-book
// lookup failure.
func New(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		logger:  logger,
	}
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// Enabled reports whether the client has an API key to authenticate with.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// GetBook fetches metadata for a single ISBN.
func (c *Client) GetBook(ctx context.Context, isbn string) (*Book, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, wrapError("getBook", isbn, ErrInvalidISBN)
	}
	if c.apiKey == "" {
		return nil, wrapError("getBook", isbn, ErrNoAPIKey)
	}

	body, err := c.doRequest(ctx, "/book/"+url.PathEscape(isbn))
	if err != nil {
		return nil, wrapError("getBook", isbn, err)
	}

	var raw rawBookResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, wrapError("getBook", isbn, fmt.Errorf("decode response: %w", err))
	}

	return &Book{
		Title:    raw.Book.Title,
		Authors:  raw.Book.Authors,
		Subjects: raw.Book.Subjects,
	}, nil
}

// Subjects fetches the subject tags for an ISBN.
// A book that exists but carries no subjects returns an empty slice, not an error.
func (c *Client) Subjects(ctx context.Context, isbn string) ([]string, error) {
	book, err := c.GetBook(ctx, isbn)
	if err != nil {
		return nil, err
	}
	return book.Subjects, nil
}

// doRequest executes an HTTP request with rate limiting.
func (c *Client) doRequest(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx, limiterKey); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("User-Agent", "PageTurn/1.0")

	c.logger.Debug("isbndb request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusBadRequest:
		return nil, ErrBadRequest
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}

// Raw API response types (internal)

type rawBookResponse struct {
	Book rawBook `json:"book"`
}

type rawBook struct {
	Title    string   `json:"title"`
	Authors  []string `json:"authors"`
	Subjects []string `json:"subjects"`
}
