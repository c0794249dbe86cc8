// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"time"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/backend"
	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/omdb"
)

// Backend is the subset of *backend.Client used by the handlers.
type Backend interface {
	AuthWithPassword(ctx context.Context, identity, password string) (*backend.AuthResult, error)

	ListMedia(ctx context.Context, credential string, q backend.MediaQuery) (*backend.Page[backend.Media], error)
	GetMedia(ctx context.Context, credential, id string) (*backend.Media, error)
	CreateMedia(ctx context.Context, credential string, form *backend.MediaForm) (*backend.Media, error)
	UpdateMedia(ctx context.Context, credential, id string, form *backend.MediaForm) (*backend.Media, error)
	DeleteMedia(ctx context.Context, credential, id string) error

	ListCategories(ctx context.Context, credential string, q backend.CategoryQuery) (*backend.Page[backend.Category], error)
	GetCategory(ctx context.Context, credential, id string) (*backend.Category, error)
	CreateCategory(ctx context.Context, credential string, form *backend.CategoryForm) (*backend.Category, error)
	UpdateCategory(ctx context.Context, credential, id string, form *backend.CategoryForm) (*backend.Category, error)
	DeleteCategory(ctx context.Context, credential, id string) error

	FileURL(collectionID, recordID, filename string) string
	Ping(ctx context.Context) error
}

// MovieLookup is satisfied by *omdb.Client.
type MovieLookup interface {
	Lookup(ctx context.Context, imdbID string) (*omdb.Movie, error)
}

// EventPublisher is satisfied by *events.Bus.
type EventPublisher interface {
	Publish(ctx context.Context, e *events.Event) error
}

// HandlerConfig carries the handler dependencies. Events may be nil.
type HandlerConfig struct {
	Tokens  *auth.TokenService
	Cookies *auth.SessionCookies
	Backend Backend
	OMDB    MovieLookup
	Events  EventPublisher
	Version string
	Stream  StreamConfig
}

// Handler holds the dependencies of every HTTP handler.
type Handler struct {
	tokens    *auth.TokenService
	cookies   *auth.SessionCookies
	backend   Backend
	omdb      MovieLookup
	events    EventPublisher
	stream    *streamProxy
	version   string
	startTime time.Time
	now       func() time.Time
}

// NewHandler creates a new Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		tokens:    cfg.Tokens,
		cookies:   cfg.Cookies,
		backend:   cfg.Backend,
		omdb:      cfg.OMDB,
		events:    cfg.Events,
		stream:    newStreamProxy(cfg.Stream),
		version:   cfg.Version,
		startTime: time.Now(),
		now:       time.Now,
	}
}

// publish sends a session event. Delivery is best effort; the bus logs and
// counts its own failures.
func (h *Handler) publish(ctx context.Context, e *events.Event) {
	if h.events == nil {
		return
	}
	_ = h.events.Publish(ctx, e) //nolint:errcheck // logged by the bus
}
