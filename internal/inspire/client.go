// Package inspire is a small client for the INSPIRE-HEP REST API. It fetches
// author profiles, literature search results and BibTeX entries, retrying on
// rate limits and caching responses for the lifetime of the process.
package inspire

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/matsen/insp/internal/metrics"
	"github.com/matsen/insp/internal/record"
)

const (
	// BaseURL is the INSPIRE-HEP REST API base URL.
	BaseURL = "https://inspirehep.net/api"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// RateLimit is 15 requests per 5 second window per INSPIRE documentation.
	RateLimit = 3.0

	// DefaultMaxAttempts bounds the attempts made for one request.
	DefaultMaxAttempts = 10

	// DefaultBackoff is the wait after an HTTP 429 response.
	DefaultBackoff = 5 * time.Second

	// DefaultCacheTTL is how long responses are reused.
	DefaultCacheTTL = 10 * time.Minute

	// DefaultPageSize is the literature result size when none is given.
	DefaultPageSize = 1000

	// breakerFailures is the number of consecutive failed requests that opens
	// the circuit.
	breakerFailures = 5
)

// Client is a rate-limited HTTP client for the INSPIRE REST API.
type Client struct {
	httpClient  *http.Client
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[[]byte]
	cache       *gocache.Cache
	cacheTTL    time.Duration
	baseURL     string
	maxAttempts int
	backoff     time.Duration
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithMaxAttempts sets how many times a rate-limited request is tried.
func WithMaxAttempts(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBackoff sets the wait after an HTTP 429 response.
func WithBackoff(d time.Duration) ClientOption {
	return func(c *Client) {
		if d >= 0 {
			c.backoff = d
		}
	}
}

// WithRateLimit sets the sustained request rate. rate.Inf disables pacing.
func WithRateLimit(r rate.Limit) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(r, 1)
	}
}

// WithCacheTTL sets how long responses are cached. Zero disables the cache.
func WithCacheTTL(d time.Duration) ClientOption {
	return func(c *Client) {
		c.cacheTTL = d
	}
}

// WithLogger sets the logger used for retry warnings.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records request counters in m.
func WithMetrics(m *metrics.Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a new INSPIRE API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		limiter:     rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:     BaseURL,
		maxAttempts: DefaultMaxAttempts,
		backoff:     DefaultBackoff,
		cacheTTL:    DefaultCacheTTL,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cacheTTL > 0 {
		c.cache = gocache.New(c.cacheTTL, 2*c.cacheTTL)
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "inspire",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || IsNotFound(err) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return c
}

// checkHTTPErrors returns an error if the HTTP status indicates a problem.
func checkHTTPErrors(status int, u string) error {
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, u)
	}
	if status >= 400 {
		return &APIError{
			StatusCode: status,
			URL:        u,
			Message:    http.StatusText(status),
		}
	}
	return nil
}

// get fetches path from the API, consulting the cache first.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	if c.cache != nil {
		if v, ok := c.cache.Get(u); ok {
			c.metrics.CacheHit()
			return v.([]byte), nil
		}
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.fetch(ctx, endpoint, u)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(u, body, gocache.DefaultExpiration)
	}
	return body, nil
}

// fetch performs the request, waiting and retrying when rate limited. Any
// other HTTP error ends the attempt loop immediately.
func (c *Client) fetch(ctx context.Context, endpoint, u string) ([]byte, error) {
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.metrics.ObserveFetch(endpoint, 0)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		c.metrics.ObserveFetch(endpoint, resp.StatusCode)

		if resp.StatusCode == http.StatusTooManyRequests {
			c.metrics.RateLimited()
			c.logger.Warn("rate limited by INSPIRE, backing off",
				"url", u,
				"attempt", attempt,
				"max_attempts", c.maxAttempts,
				"backoff", c.backoff,
			)
			if attempt == c.maxAttempts {
				break
			}
			if err := sleep(ctx, c.backoff); err != nil {
				return nil, err
			}
			continue
		}

		if err := checkHTTPErrors(resp.StatusCode, u); err != nil {
			return nil, err
		}
		if readErr != nil {
			return nil, fmt.Errorf("%w: reading body: %v", ErrNetworkError, readErr)
		}
		return stripMath(body), nil
	}

	return nil, fmt.Errorf("%w: gave up after %d attempts (url: %s)", ErrRateLimited, c.maxAttempts, u)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// stripMath removes TeX math delimiters from a response; titles are rendered
// as plain text downstream.
func stripMath(body []byte) []byte {
	return bytes.ReplaceAll(body, []byte("$"), nil)
}

// Author fetches the profile of the author identified by id.
func (c *Client) Author(ctx context.Context, id Identifier) (record.Person, error) {
	path, query := id.profilePath()
	body, err := c.get(ctx, "authors", path, query)
	if err != nil {
		return record.Person{}, err
	}

	hits, err := decodeHits(body)
	if err != nil {
		return record.Person{}, err
	}
	if len(hits) == 0 {
		return record.Person{}, fmt.Errorf("%w: author %s", ErrNotFound, id)
	}

	var raw record.RawAuthor
	if err := json.Unmarshal(hits[0], &raw); err != nil {
		return record.Person{}, fmt.Errorf("%w: parsing author profile: %v", ErrInvalidResponse, err)
	}
	p := record.BuildPerson(raw)
	if p.BAI == "" && id.Kind == KindBAI {
		p.BAI = id.Value
	}
	return p, nil
}

// Literature runs a literature search, most recent first, and returns the
// metadata object of each hit.
func (c *Client) Literature(ctx context.Context, q string, size int) ([]json.RawMessage, error) {
	if size <= 0 {
		size = DefaultPageSize
	}
	query := url.Values{
		"sort": {"mostrecent"},
		"size": {strconv.Itoa(size)},
		"q":    {q},
	}
	body, err := c.get(ctx, "literature", "/literature", query)
	if err != nil {
		return nil, err
	}
	return decodeHits(body)
}

// AuthorLiterature returns the records of the author with the given BAI.
func (c *Client) AuthorLiterature(ctx context.Context, bai string, size int) ([]json.RawMessage, error) {
	return c.Literature(ctx, "a "+bai, size)
}

// RecordByKey fetches the literature record with the given citation key.
func (c *Client) RecordByKey(ctx context.Context, key string) (json.RawMessage, error) {
	body, err := c.get(ctx, "literature", "/literature", url.Values{"q": {"texkeys:" + key}})
	if err != nil {
		return nil, err
	}
	hits, err := decodeHits(body)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, fmt.Errorf("%w: record %s", ErrNotFound, key)
	}
	if len(hits) > 1 {
		c.logger.Warn("citation key matched several records, using the first", "key", key, "hits", len(hits))
	}
	return hits[0], nil
}

// BibTeX fetches the BibTeX entry for a citation key.
func (c *Client) BibTeX(ctx context.Context, key string) (string, error) {
	query := url.Values{"q": {"texkeys:" + key}, "format": {"bibtex"}}
	body, err := c.get(ctx, "bibtex", "/literature", query)
	if err != nil {
		return "", err
	}
	entry := strings.TrimSpace(string(body))
	if entry == "" {
		return "", fmt.Errorf("%w: bibtex for %s", ErrNotFound, key)
	}
	return entry + "\n", nil
}
