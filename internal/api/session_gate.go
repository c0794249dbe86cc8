// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/events"
)

// NewSessionGate builds the gate used by the router: failures are written as
// envelopes and every rejection is published as a session.rejected event.
// pub may be nil.
func NewSessionGate(verifier auth.TokenVerifier, cookies *auth.SessionCookies, pub EventPublisher) *auth.Gate {
	return auth.NewGate(verifier, cookies,
		auth.WithUnauthorizedResponder(func(w http.ResponseWriter, r *http.Request) {
			NewResponseWriter(w, r).Unauthorized(msgAuthRequired)
		}),
		auth.WithInternalErrorResponder(func(w http.ResponseWriter, r *http.Request) {
			NewResponseWriter(w, r).InternalError(msgInternalError)
		}),
		auth.WithRejectionHook(func(r *http.Request, d auth.Decision) {
			if pub == nil {
				return
			}
			e := events.NewEvent(events.TypeSessionRejected, "", "", clientIP(r), d.Reason())
			_ = pub.Publish(r.Context(), e) //nolint:errcheck // logged by the bus
		}),
	)
}
