// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package backend

import (
	"bytes"
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

	"github.com/tomtom215/marquee/internal/breaker"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

const (
	mediaCollection    = "media"
	categoryCollection = "categories"

	// maxResponseBytes bounds how much of a backend body is read.
	maxResponseBytes = 10 << 20
)

// Config configures a Client.
type Config struct {
	// BaseURL is the public backend URL, without trailing slash.
	BaseURL string
	// AuthCollection holds operator accounts; defaults to _superusers.
	AuthCollection string
	Timeout        time.Duration
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Client talks to the record backend.
type Client struct {
	baseURL        string
	authCollection string
	httpClient     *http.Client
	cb             *gobreaker.CircuitBreaker[[]byte]
	name           string
}

// NewClient returns a client with its own circuit breaker.
func NewClient(cfg Config) *Client {
	if cfg.AuthCollection == "" {
		cfg.AuthCollection = "_superusers"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	name := "backend-api"
	return &Client{
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		authCollection: cfg.AuthCollection,
		httpClient:     httpClient,
		name:           name,
		cb: breaker.New[[]byte](breaker.Config{
			Name:         name,
			IsSuccessful: isBreakerSuccess,
		}),
	}
}

// isBreakerSuccess keeps 4xx responses from tripping the breaker; they say
// nothing about backend health.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode < http.StatusInternalServerError
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FileURL is the public URL of a file field stored on a record.
func (c *Client) FileURL(collectionID, recordID, filename string) string {
	if filename == "" {
		return ""
	}
	return fmt.Sprintf("%s/api/files/%s/%s/%s",
		c.baseURL, url.PathEscape(collectionID), url.PathEscape(recordID), url.PathEscape(filename))
}

// Ping checks that the backend answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, request{op: "health", method: http.MethodGet, path: "/api/health"})
	return err
}

// AuthWithPassword authenticates an operator against the auth collection.
func (c *Client) AuthWithPassword(ctx context.Context, identity, password string) (*AuthResult, error) {
	payload, err := json.Marshal(map[string]string{"identity": identity, "password": password})
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, request{
		op:          "auth_with_password",
		method:      http.MethodPost,
		path:        "/api/collections/" + url.PathEscape(c.authCollection) + "/auth-with-password",
		body:        bytes.NewReader(payload),
		contentType: "application/json",
	})
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			switch se.StatusCode {
			case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
				return nil, ErrInvalidCredentials
			}
		}
		return nil, err
	}

	var res AuthResult
	if err := decode(body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListMedia lists media with categories expanded.
func (c *Client) ListMedia(ctx context.Context, credential string, q MediaQuery) (*Page[Media], error) {
	body, err := c.do(ctx, request{
		op:         "list_media",
		method:     http.MethodGet,
		path:       recordsPath(mediaCollection, ""),
		query:      q.values(),
		credential: credential,
	})
	if err != nil {
		return nil, err
	}
	var page Page[Media]
	if err := decode(body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetMedia fetches one media record with categories expanded.
func (c *Client) GetMedia(ctx context.Context, credential, id string) (*Media, error) {
	body, err := c.do(ctx, request{
		op:         "get_media",
		method:     http.MethodGet,
		path:       recordsPath(mediaCollection, id),
		query:      url.Values{"expand": {"categories"}},
		credential: credential,
	})
	if err != nil {
		return nil, err
	}
	var m Media
	if err := decode(body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMedia creates a media record from a multipart form.
func (c *Client) CreateMedia(ctx context.Context, credential string, form *MediaForm) (*Media, error) {
	return c.writeMedia(ctx, "create_media", http.MethodPost, credential, "", form)
}

// UpdateMedia sends only the fields present in form.
func (c *Client) UpdateMedia(ctx context.Context, credential, id string, form *MediaForm) (*Media, error) {
	return c.writeMedia(ctx, "update_media", http.MethodPatch, credential, id, form)
}

func (c *Client) writeMedia(ctx context.Context, op, method, credential, id string, form *MediaForm) (*Media, error) {
	payload, contentType := form.encode()
	defer func() { _ = payload.Close() }()
	body, err := c.do(ctx, request{
		op:          op,
		method:      method,
		path:        recordsPath(mediaCollection, id),
		query:       url.Values{"expand": {"categories"}},
		body:        payload,
		contentType: contentType,
		credential:  credential,
	})
	if err != nil {
		return nil, err
	}
	var m Media
	if err := decode(body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMedia deletes a media record.
func (c *Client) DeleteMedia(ctx context.Context, credential, id string) error {
	_, err := c.do(ctx, request{
		op:         "delete_media",
		method:     http.MethodDelete,
		path:       recordsPath(mediaCollection, id),
		credential: credential,
	})
	return err
}

// ListCategories lists categories.
func (c *Client) ListCategories(ctx context.Context, credential string, q CategoryQuery) (*Page[Category], error) {
	body, err := c.do(ctx, request{
		op:         "list_categories",
		method:     http.MethodGet,
		path:       recordsPath(categoryCollection, ""),
		query:      q.values(),
		credential: credential,
	})
	if err != nil {
		return nil, err
	}
	var page Page[Category]
	if err := decode(body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetCategory fetches one category.
func (c *Client) GetCategory(ctx context.Context, credential, id string) (*Category, error) {
	body, err := c.do(ctx, request{
		op:         "get_category",
		method:     http.MethodGet,
		path:       recordsPath(categoryCollection, id),
		credential: credential,
	})
	if err != nil {
		return nil, err
	}
	var cat Category
	if err := decode(body, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// CreateCategory creates a category from a multipart form.
func (c *Client) CreateCategory(ctx context.Context, credential string, form *CategoryForm) (*Category, error) {
	return c.writeCategory(ctx, "create_category", http.MethodPost, credential, "", form)
}

// UpdateCategory sends only the fields present in form.
func (c *Client) UpdateCategory(ctx context.Context, credential, id string, form *CategoryForm) (*Category, error) {
	return c.writeCategory(ctx, "update_category", http.MethodPatch, credential, id, form)
}

func (c *Client) writeCategory(ctx context.Context, op, method, credential, id string, form *CategoryForm) (*Category, error) {
	payload, contentType := form.encode()
	defer func() { _ = payload.Close() }()
	body, err := c.do(ctx, request{
		op:          op,
		method:      method,
		path:        recordsPath(categoryCollection, id),
		body:        payload,
		contentType: contentType,
		credential:  credential,
	})
	if err != nil {
		return nil, err
	}
	var cat Category
	if err := decode(body, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory deletes a category.
func (c *Client) DeleteCategory(ctx context.Context, credential, id string) error {
	_, err := c.do(ctx, request{
		op:         "delete_category",
		method:     http.MethodDelete,
		path:       recordsPath(categoryCollection, id),
		credential: credential,
	})
	return err
}

type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	credential  string
}

// do runs one request through the breaker and returns the 2xx body.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.roundTrip(ctx, req)
	})
	if breaker.Record(c.name, err) {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return body, err
}

func (c *Client) roundTrip(ctx context.Context, req request) ([]byte, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, req.body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", req.op, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if req.credential != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.credential)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.RecordBackendRequest(req.op, 0, time.Since(start))
		logging.Ctx(ctx).Error().Err(err).Str("operation", req.op).Msg("backend request failed")
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, req.op, err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordBackendRequest(req.op, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %w", ErrUnavailable, req.op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.Ctx(ctx).Debug().
			Str("operation", req.op).
			Int("status", resp.StatusCode).
			Msg("backend returned error status")
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: summarizeError(resp.StatusCode, body)}
	}
	return body, nil
}

// decode unmarshals a 2xx body into out and checks required fields.
func decode(body []byte, out validatable) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return out.validate()
}

func recordsPath(collection, id string) string {
	p := "/api/collections/" + collection + "/records"
	if id != "" {
		p += "/" + url.PathEscape(id)
	}
	return p
}
