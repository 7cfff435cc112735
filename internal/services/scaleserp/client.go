package scaleserp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrRateLimited indicates the API rate limit was exceeded
	ErrRateLimited = errors.New("scaleserp api rate limit exceeded")
)

// StatusError is a transport-level failure: the service answered with a
// non-2xx status before any body could be decoded.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("scaleserp api returned status %d", e.StatusCode)
}

// Config holds configuration for the ScaleSERP client
type Config struct {
	// Rate limiting
	RequestsPerMinute int // Default: 60
	BurstSize         int // Default: 5

	// HTTP configuration
	Timeout      time.Duration // Default: 10s
	MaxRetries   int           // Default: 3
	RetryBackoff time.Duration // Default: 1s

	UserAgent string

	// Base URL (for testing)
	BaseURL string // Default: https://api.scaleserp.com
}

// Client handles communication with the ScaleSERP API. It owns the transport
// concerns only: rate limiting, retries and status handling. URL construction
// lives in the params types and schema checking in the decoders.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	config      Config
	baseURL     string

	metrics clientMetrics
}

// clientMetrics tracks client usage statistics
type clientMetrics struct {
	requests      atomic.Int64
	rateLimitHits atomic.Int64
	errors        atomic.Int64
}

// NewClient creates a new ScaleSERP API client
func NewClient(cfg Config) *Client {
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = 60
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = 5
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "scale-serp/1.0 (+https://github.com/Aleksandr-Gamble/scale-serp)"
	}

	limiter := rate.NewLimiter(
		rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)),
		cfg.BurstSize,
	)

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: limiter,
		config:      cfg,
		baseURL:     cfg.BaseURL,
	}
}

// Search fetches and decodes one /search response for the given parameters.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	body, err := c.fetchWithRetry(ctx, params.URL(c.baseURL))
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", params.Query, err)
	}

	resp, err := DecodeSearchResponse(body)
	if err != nil {
		c.metrics.errors.Add(1)
		return nil, fmt.Errorf("search %q: %w", params.Query, err)
	}
	return resp, nil
}

// Locations fetches and decodes one /locations response for the given parameters.
func (c *Client) Locations(ctx context.Context, params LocationParams) (*LocationsResponse, error) {
	body, err := c.fetchWithRetry(ctx, params.URL(c.baseURL))
	if err != nil {
		return nil, fmt.Errorf("locations %q: %w", params.Query, err)
	}

	resp, err := DecodeLocationsResponse(body)
	if err != nil {
		c.metrics.errors.Add(1)
		return nil, fmt.Errorf("locations %q: %w", params.Query, err)
	}
	return resp, nil
}

// fetchWithRetry performs a GET with retry on rate limiting and temporary
// network errors
func (c *Client) fetchWithRetry(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	backoff := c.config.RetryBackoff

	for attempt := 0; attempt < c.config.MaxRetries; attempt++ {
		body, err := c.fetch(ctx, url)
		if err == nil {
			return body, nil
		}

		if errors.Is(err, ErrRateLimited) || isTemporaryError(err) || isRetryableStatus(err) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
				lastErr = err
				continue
			}
		}

		// Non-retryable error
		return nil, err
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// fetch performs a single GET request and returns the raw body
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	c.metrics.requests.Add(1)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.errors.Add(1)
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.metrics.rateLimitHits.Add(1)
		return nil, ErrRateLimited
	}

	if resp.StatusCode != http.StatusOK {
		c.metrics.errors.Add(1)
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.errors.Add(1)
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}

// GetMetrics returns current client metrics
func (c *Client) GetMetrics() map[string]int64 {
	return map[string]int64{
		"requests":        c.metrics.requests.Load(),
		"rate_limit_hits": c.metrics.rateLimitHits.Load(),
		"errors":          c.metrics.errors.Load(),
	}
}

// isTemporaryError checks if an error is temporary and should be retried
func isTemporaryError(err error) bool {
	var tempErr interface{ Temporary() bool }
	if errors.As(err, &tempErr) {
		return tempErr.Temporary()
	}

	var timeoutErr interface{ Timeout() bool }
	if errors.As(err, &timeoutErr) {
		return timeoutErr.Timeout()
	}

	return false
}

// isRetryableStatus reports whether err is a server-side status worth retrying
func isRetryableStatus(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500
	}
	return false
}
