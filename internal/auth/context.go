// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package auth

import "context"

type contextKey string

const sessionContextKey contextKey = "auth.session"

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// SessionFromContext returns the verified session attached by the gate.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(*Session)
	return s, ok && s != nil
}

// DelegatedCredential returns the backend credential of the caller, or "" for
// anonymous requests.
func DelegatedCredential(ctx context.Context) string {
	if s, ok := SessionFromContext(ctx); ok {
		return s.Credential
	}
	return ""
}
