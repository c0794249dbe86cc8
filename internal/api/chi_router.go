// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/middleware"
)

// Router wires handlers, the session gate and the Chi middleware together.
type Router struct {
	handler       *Handler
	gate          *auth.Gate
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil chiMiddleware uses the defaults.
func NewRouter(handler *Handler, gate *auth.Gate, chiMiddleware *ChiMiddleware) *Router {
	if chiMiddleware == nil {
		chiMiddleware = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		gate:          gate,
		chiMiddleware: chiMiddleware,
	}
}

// SetupChi configures all HTTP routes.
//
// On write routes the rate limiter runs before the gate, so rejected
// credentials still count against the limit.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	gate := router.gate
	limits := router.chiMiddleware

	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(limits.RealIP())
	r.Use(chimiddleware.Recoverer)
	r.Use(limits.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(middleware.PrometheusMetrics)

	// ========================
	// Operational Endpoints
	// ========================
	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	r.Route("/api", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(middleware.Compression)

		// ========================
		// Authentication Endpoints
		// ========================
		r.Route("/auth", func(r chi.Router) {
			r.With(limits.RateLimitAuth()).Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Post("/verify", h.Verify)
			r.With(gate.RequiredClearing).Get("/session", h.Session)
			r.With(gate.Required).Get("/me", h.Me)
		})

		// ========================
		// Media Endpoints
		// ========================
		r.Route("/media", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(gate.Optional)
				r.Get("/", h.ListMedia)
				r.Get("/search", h.SearchMedia)
				r.Get("/{id}", h.GetMedia)
			})
			r.Group(func(r chi.Router) {
				r.Use(limits.RateLimitMedia())
				r.Use(gate.Required)
				r.Post("/", h.CreateMedia)
				r.Patch("/{id}", h.UpdateMedia)
				r.Delete("/{id}", h.DeleteMedia)
			})
		})

		// ========================
		// Category Endpoints
		// ========================
		r.Route("/categories", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(gate.Optional)
				r.Get("/", h.ListCategories)
				r.Get("/{id}", h.GetCategory)
			})
			r.Group(func(r chi.Router) {
				r.Use(limits.RateLimitAPI())
				r.Use(gate.Required)
				r.Post("/", h.CreateCategory)
				r.Patch("/{id}", h.UpdateCategory)
				r.Delete("/{id}", h.DeleteCategory)
			})
		})

		// ========================
		// OMDB Endpoints
		// ========================
		r.With(limits.RateLimitAPI(), gate.Required).Get("/omdb/{imdbId}", h.OMDBLookup)
		r.With(gate.Required).Get("/video/stream", h.StreamVideo)
	})

	return r
}
