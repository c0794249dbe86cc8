// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/middleware"
	"github.com/tomtom215/marquee/internal/ratelimit"
)

// ChiMiddlewareConfig holds configuration for Chi middleware factories.
type ChiMiddlewareConfig struct {
	// CORS configuration
	CORSAllowedOrigins   []string
	CORSAllowedMethods   []string
	CORSAllowedHeaders   []string
	CORSExposedHeaders   []string
	CORSAllowCredentials bool
	CORSMaxAge           int // seconds

	// RateLimitDisabled turns every limiter into a pass-through.
	RateLimitDisabled bool

	// TrustedProxies may set the client address from forwarding headers.
	// Nil trusts nobody and every request is keyed by its socket address.
	TrustedProxies *middleware.TrustedProxies
}

// DefaultChiMiddlewareConfig returns a secure default configuration.
// CORS origins default to empty, requiring explicit configuration.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{},
		CORSAllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		CORSExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		// Session cookies must cross origins for the admin UI.
		CORSAllowCredentials: true,
		CORSMaxAge:           86400,
	}
}

// ChiMiddleware provides Chi-compatible middleware factories.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates a new Chi middleware factory with the given configuration.
func NewChiMiddleware(config *ChiMiddlewareConfig) *ChiMiddleware {
	if config == nil {
		config = DefaultChiMiddlewareConfig()
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   config.CORSAllowedOrigins,
		AllowedMethods:   config.CORSAllowedMethods,
		AllowedHeaders:   config.CORSAllowedHeaders,
		ExposedHeaders:   config.CORSExposedHeaders,
		AllowCredentials: config.CORSAllowCredentials,
		MaxAge:           config.CORSMaxAge,
	})

	return &ChiMiddleware{
		config: config,
		cors:   corsHandler,
	}
}

// CORS returns the go-chi/cors middleware. It must be global so OPTIONS
// preflights are answered before routing.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RealIP resolves the client address. It must run before the limiters,
// which key on RemoteAddr.
func (m *ChiMiddleware) RealIP() func(http.Handler) http.Handler {
	return middleware.RealIP(m.config.TrustedProxies)
}

// RateLimitConfig defines rate limit parameters for a class of endpoints.
type RateLimitConfig struct {
	// Name labels the limiter in metrics and logs.
	Name     string
	Requests int
	Window   time.Duration
}

// Endpoint-specific rate limit configurations
var (
	// RateLimitAuth guards login against password guessing.
	RateLimitAuth = RateLimitConfig{Name: "auth", Requests: 5, Window: time.Minute}

	// RateLimitAPI covers category writes and OMDB lookups.
	RateLimitAPI = RateLimitConfig{Name: "api", Requests: 30, Window: time.Minute}

	// RateLimitMedia covers media writes, which may carry large uploads.
	RateLimitMedia = RateLimitConfig{Name: "media", Requests: 20, Window: time.Minute}
)

// RateLimitCustom returns a fixed-window limiter keyed by endpoint path and
// client IP. Each call builds its own counter.
func (m *ChiMiddleware) RateLimitCustom(config RateLimitConfig) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		config.Requests,
		config.Window,
		httprate.WithKeyFuncs(httprate.KeyByEndpoint, httprate.KeyByIP),
		httprate.WithLimitCounter(ratelimit.NewFixedWindowCounter()),
		httprate.WithLimitHandler(rateLimitExceeded(config.Name)),
	)
}

// RateLimitAuth returns the login limiter.
func (m *ChiMiddleware) RateLimitAuth() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitAuth)
}

// RateLimitAPI returns the limiter for category writes and OMDB.
func (m *ChiMiddleware) RateLimitAPI() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitAPI)
}

// RateLimitMedia returns the limiter for media writes.
func (m *ChiMiddleware) RateLimitMedia() func(http.Handler) http.Handler {
	return m.RateLimitCustom(RateLimitMedia)
}

func rateLimitExceeded(limiter string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics.RecordRateLimitHit(limiter)
		logging.Ctx(r.Context()).Warn().
			Str("limiter", limiter).
			Str("path", r.URL.Path).
			Str("ip", r.RemoteAddr).
			Msg("rate limit exceeded")
		NewResponseWriter(w, r).TooManyRequests(msgTooManyRequests)
	}
}

// APISecurityHeaders adds security headers to API responses:
//   - X-Content-Type-Options: nosniff
//   - X-Frame-Options: DENY
//   - Referrer-Policy: strict-origin-when-cross-origin
//   - Strict-Transport-Security when the request arrived over TLS, directly or
//     through a TLS-terminating proxy
func APISecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
