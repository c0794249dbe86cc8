// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/marquee/internal/events"
)

// protectedRoutes are every Required route outside /api/auth.
var protectedRoutes = []struct {
	method string
	path   string
}{
	{http.MethodPost, "/api/media"},
	{http.MethodPatch, "/api/media/media1"},
	{http.MethodDelete, "/api/media/media1"},
	{http.MethodPost, "/api/categories"},
	{http.MethodPatch, "/api/categories/cat1"},
	{http.MethodDelete, "/api/categories/cat1"},
	{http.MethodGet, "/api/omdb/tt0111161"},
	{http.MethodGet, "/api/video/stream?t=eA"},
}

func TestRouter_RequiredRejectsBeforeBackend(t *testing.T) {
	t.Parallel()

	for _, route := range protectedRoutes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, withOMDB(&fakeLookup{}))

			rec := env.serve(httptest.NewRequest(route.method, route.path, nil))
			expectError(t, rec, http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication required")

			if calls := env.backend.Calls(); len(calls) != 0 {
				t.Errorf("backend reached without a session: %+v", calls)
			}
			evs := env.publisher.Events()
			if len(evs) != 1 || evs[0].Type != events.TypeSessionRejected || evs[0].Reason != "missing" {
				t.Errorf("events = %+v", evs)
			}
		})
	}
}

func TestRouter_ExpiredCookieOnWriteRoute(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/media/media1", nil)
	req.AddCookie(expiredSessionCookie(t))
	rec := env.serve(req)

	expectError(t, rec, http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication required")
	if got := rec.Header().Values("Set-Cookie"); len(got) != 0 {
		t.Errorf("Set-Cookie = %v, want none outside the session endpoint", got)
	}
	if calls := env.backend.Calls(); len(calls) != 0 {
		t.Errorf("backend calls = %+v", calls)
	}
}

func TestRouter_OptionalForwardsCredential(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		decorate func(t *testing.T, env *testEnv, r *http.Request)
		wantAuth string
	}{
		{
			name:     "anonymous",
			decorate: func(*testing.T, *testEnv, *http.Request) {},
			wantAuth: "",
		},
		{
			name: "session cookie",
			decorate: func(t *testing.T, env *testEnv, r *http.Request) {
				r.AddCookie(env.sessionCookie(t))
			},
			wantAuth: "Bearer " + testCredential,
		},
		{
			name: "bearer header",
			decorate: func(t *testing.T, env *testEnv, r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+env.sessionCookie(t).Value)
			},
			wantAuth: "Bearer " + testCredential,
		},
		{
			name: "expired cookie proceeds anonymously",
			decorate: func(t *testing.T, _ *testEnv, r *http.Request) {
				r.AddCookie(expiredSessionCookie(t))
			},
			wantAuth: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)

			req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
			tt.decorate(t, env, req)
			rec := env.serve(req)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d (body %s)", rec.Code, rec.Body.String())
			}

			calls := env.backend.Calls()
			if len(calls) != 1 {
				t.Fatalf("backend calls = %d", len(calls))
			}
			if calls[0].Authorization != tt.wantAuth {
				t.Errorf("Authorization = %q, want %q", calls[0].Authorization, tt.wantAuth)
			}
			if got := rec.Header().Values("Set-Cookie"); len(got) != 0 {
				t.Errorf("optional route set cookies: %v", got)
			}
			if evs := env.publisher.Events(); len(evs) != 0 {
				t.Errorf("optional route published %+v", evs)
			}
		})
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
		"Content-Type":           "application/json; charset=utf-8",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID not set")
	}
}

func TestRouter_RequestIDPropagation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/media/missing", nil)
	req.Header.Set("X-Request-ID", "req-abc-123")
	rec := env.serve(req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-abc-123" {
		t.Errorf("X-Request-ID = %q", got)
	}
	resp := decodeEnvelope(t, rec, nil)
	if resp.Meta == nil || resp.Meta.RequestID != "req-abc-123" {
		t.Errorf("meta = %+v", resp.Meta)
	}
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/health", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/swagger/index.html", http.StatusOK},
		{"/api/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := env.serve(httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://admin.example.com"}
	cfg.RateLimitDisabled = true
	env := newTestEnv(t)
	env.handler = NewRouter(
		NewHandler(HandlerConfig{Tokens: env.tokens, Cookies: env.cookies}),
		NewSessionGate(env.tokens, env.cookies, nil),
		NewChiMiddleware(cfg),
	).SetupChi()

	req := httptest.NewRequest(http.MethodOptions, "/api/media", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := env.serve(req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://admin.example.com" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q", got)
	}
}
