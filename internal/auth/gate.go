// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// State is the outcome of resolving a request's session.
type State int

const (
	// NoToken means neither the cookie nor a bearer header was present.
	NoToken State = iota
	// TokenInvalidOrExpired means a token was present but did not verify.
	TokenInvalidOrExpired
	// Authenticated means the token verified; Decision.Session is set.
	Authenticated
)

func (s State) String() string {
	switch s {
	case NoToken:
		return "no_token"
	case TokenInvalidOrExpired:
		return "token_invalid_or_expired"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Decision is the result of Gate.Resolve.
type Decision struct {
	State   State
	Session *Session
	// Err is the verification error for TokenInvalidOrExpired.
	Err error
}

// Reason is a short label for logs and events. It is never sent to clients.
func (d Decision) Reason() string {
	switch {
	case d.State == NoToken:
		return "missing"
	case errors.Is(d.Err, ErrExpiredToken):
		return "expired"
	case errors.Is(d.Err, ErrConfiguration):
		return "configuration"
	case d.Err != nil:
		return "invalid"
	default:
		return ""
	}
}

// TokenVerifier is satisfied by *TokenService.
type TokenVerifier interface {
	Verify(token string) (*Session, error)
}

// Responder writes a failure response for the gate.
type Responder func(w http.ResponseWriter, r *http.Request)

// RejectionHook observes every Required-mode rejection.
type RejectionHook func(r *http.Request, d Decision)

// Gate is the single enforcement point for sessions.
type Gate struct {
	verifier      TokenVerifier
	cookies       *SessionCookies
	unauthorized  Responder
	internalError Responder
	onReject      RejectionHook
}

// GateOption customizes a Gate.
type GateOption func(*Gate)

// WithUnauthorizedResponder replaces the default 401 body.
func WithUnauthorizedResponder(fn Responder) GateOption {
	return func(g *Gate) { g.unauthorized = fn }
}

// WithInternalErrorResponder replaces the default 500 body.
func WithInternalErrorResponder(fn Responder) GateOption {
	return func(g *Gate) { g.internalError = fn }
}

// WithRejectionHook registers fn; it runs before the 401 is written.
func WithRejectionHook(fn RejectionHook) GateOption {
	return func(g *Gate) { g.onReject = fn }
}

// NewGate returns a gate reading tokens through cookies and checking them with
// verifier.
func NewGate(verifier TokenVerifier, cookies *SessionCookies, opts ...GateOption) *Gate {
	g := &Gate{
		verifier:      verifier,
		cookies:       cookies,
		unauthorized:  plainResponder(http.StatusUnauthorized, "Authentication required"),
		internalError: plainResponder(http.StatusInternalServerError, "Internal server error"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Resolve reads the session token and verifies it. The cookie wins; an
// "Authorization: Bearer" header is accepted for non-browser clients.
func (g *Gate) Resolve(r *http.Request) Decision {
	token, ok := g.cookies.Read(r)
	if !ok {
		token, ok = bearerToken(r)
	}
	if !ok {
		return Decision{State: NoToken}
	}

	session, err := g.verifier.Verify(token)
	if err != nil {
		return Decision{State: TokenInvalidOrExpired, Err: err}
	}
	return Decision{State: Authenticated, Session: session}
}

// Required rejects every request that is not Authenticated before next runs.
func (g *Gate) Required(next http.Handler) http.Handler {
	return g.required(next, false)
}

// RequiredClearing is Required plus clearing the cookie pair when a token was
// present but failed verification, so a stale browser is logged out instead
// of retrying forever.
func (g *Gate) RequiredClearing(next http.Handler) http.Handler {
	return g.required(next, true)
}

func (g *Gate) required(next http.Handler, clearOnFailure bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := g.Resolve(r)
		metrics.RecordSessionDecision(d.State.String())
		if d.State == Authenticated {
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), d.Session)))
			return
		}

		g.logFailure(r, d)
		if errors.Is(d.Err, ErrConfiguration) {
			g.internalError(w, r)
			return
		}
		if clearOnFailure && d.State == TokenInvalidOrExpired {
			g.cookies.Clear(w)
		}
		if g.onReject != nil {
			g.onReject(r, d)
		}
		g.unauthorized(w, r)
	})
}

// Optional never rejects. Authenticated requests get the session attached;
// everything else proceeds anonymously.
func (g *Gate) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := g.Resolve(r)
		if d.State == Authenticated {
			r = r.WithContext(WithSession(r.Context(), d.Session))
		} else if d.State == TokenInvalidOrExpired {
			g.logFailure(r, d)
		}
		next.ServeHTTP(w, r)
	})
}

// logFailure: expiry is routine, anything else that fails verification is
// treated as suspicious.
func (g *Gate) logFailure(r *http.Request, d Decision) {
	log := logging.Ctx(r.Context())
	switch d.Reason() {
	case "missing":
		log.Debug().Str("path", r.URL.Path).Msg("no session token")
	case "expired":
		log.Debug().Str("path", r.URL.Path).Msg("session token expired")
	case "configuration":
		log.Error().Err(d.Err).Msg("session verification misconfigured")
	default:
		log.Warn().
			Str("path", r.URL.Path).
			Str("ip", r.RemoteAddr).
			Err(d.Err).
			Msg("rejected invalid session token")
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}

func plainResponder(status int, msg string) Responder {
	return func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, msg, status)
	}
}
