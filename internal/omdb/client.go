// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package omdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/breaker"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// DefaultBaseURL is the public OMDB endpoint.
const DefaultBaseURL = "https://www.omdbapi.com/"

var (
	// ErrNotConfigured means no API key is set.
	ErrNotConfigured = errors.New("OMDB API key not configured")

	// ErrInvalidID means the id is not "tt" plus 7 or 8 digits.
	ErrInvalidID = errors.New("invalid IMDB ID format")

	// ErrNotFound is matched by *NotFoundError.
	ErrNotFound = errors.New("movie not found")

	// ErrUnavailable covers transport failures, throttle cancellation and an
	// open breaker.
	ErrUnavailable = errors.New("OMDB unavailable")
)

// NotFoundError carries OMDB's own explanation for a "Response": "False".
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// Is makes errors.Is(err, ErrNotFound) work.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StatusError is a non-2xx answer from OMDB.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return "OMDB API error: " + http.StatusText(e.StatusCode)
}

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond and Burst shape the outbound token bucket.
	RequestsPerSecond float64
	Burst             int
	// Cache may be nil to disable caching.
	Cache      Cache
	HTTPClient *http.Client
}

// Client performs throttled, cached OMDB lookups.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      Cache
	cb         *gobreaker.CircuitBreaker[*Movie]
	name       string
}

// NewClient returns a client. A missing API key is not an error here;
// Lookup reports ErrNotConfigured so the rest of the server still starts.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = max(1, int(cfg.RequestsPerSecond))
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	name := "omdb-api"
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cache:      cfg.Cache,
		name:       name,
		cb: breaker.New[*Movie](breaker.Config{
			Name:         name,
			IsSuccessful: isBreakerSuccess,
		}),
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// isBreakerSuccess: unknown titles and client errors say nothing about
// OMDB's health.
func isBreakerSuccess(err error) bool {
	if err == nil || errors.Is(err, ErrNotFound) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode < http.StatusInternalServerError
}

// Lookup returns the movie for rawID, which may omit the "tt" prefix.
func (c *Client) Lookup(ctx context.Context, rawID string) (*Movie, error) {
	id, err := NormalizeIMDBID(rawID)
	if err != nil {
		return nil, err
	}
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	if c.cache != nil {
		movie, ok, err := c.cache.Get(ctx, id)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("imdb_id", id).Msg("OMDB cache read failed")
		} else if ok {
			metrics.RecordOMDBLookup("cache")
			return movie, nil
		}
	}

	movie, err := c.cb.Execute(func() (*Movie, error) {
		return c.fetch(ctx, id)
	})
	if breaker.Record(c.name, err) {
		metrics.RecordOMDBLookup("error")
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	switch {
	case errors.Is(err, ErrNotFound):
		metrics.RecordOMDBLookup("not_found")
		return nil, err
	case err != nil:
		metrics.RecordOMDBLookup("error")
		logging.Ctx(ctx).Error().Err(err).Str("imdb_id", id).Msg("OMDB lookup failed")
		return nil, err
	}

	metrics.RecordOMDBLookup("remote")
	if c.cache != nil {
		if err := c.cache.Set(ctx, id, movie); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("imdb_id", id).Msg("OMDB cache write failed")
		}
	}
	return movie, nil
}

func (c *Client) fetch(ctx context.Context, id string) (*Movie, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: throttle: %w", ErrUnavailable, err)
	}

	q := url.Values{}
	q.Set("i", id)
	q.Set("apikey", c.apiKey)
	target := c.baseURL
	if strings.Contains(target, "?") {
		target += "&" + q.Encode()
	} else {
		target += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build OMDB request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The URL carries the API key; report only the cause.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var movie Movie
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&movie); err != nil {
		return nil, fmt.Errorf("decode OMDB response: %w", err)
	}
	if movie.Response == "False" {
		msg := movie.Error
		if msg == "" {
			msg = "Movie not found"
		}
		return nil, &NotFoundError{Message: msg}
	}
	return &movie, nil
}
