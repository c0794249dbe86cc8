// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/backend"
	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/validation"
)

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Success bool              `json:"success"`
	User    auth.UserSnapshot `json:"user"`
}

// LogoutResponse is the body of every logout.
type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SessionResponse is the body of GET /api/auth/session.
type SessionResponse struct {
	Success bool              `json:"success"`
	User    auth.UserSnapshot `json:"user"`
}

// VerifyRequest is the body of POST /api/auth/verify.
type VerifyRequest struct {
	Token string `json:"token"`
}

// TokenUser is the identity decoded from a verified token.
type TokenUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

// VerifyResponse is the body of a successful verify.
type VerifyResponse struct {
	Valid bool      `json:"valid"`
	User  TokenUser `json:"user"`
}

// MeUser is TokenUser plus the time the request was authenticated.
type MeUser struct {
	TokenUser
	AuthenticatedAt string `json:"authenticatedAt"`
}

// MeResponse is the body of GET /api/auth/me.
type MeResponse struct {
	Message    string `json:"message"`
	User       MeUser `json:"user"`
	ServerTime string `json:"serverTime"`
}

// Login authenticates against the backend and establishes a session.
//
// @Summary Log in
// @Description Exchanges backend credentials for a session cookie pair. Failed attempts set no cookies.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body validation.LoginRequest true "Operator credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} APIResponse "Validation failed"
// @Failure 401 {object} APIResponse "Invalid credentials"
// @Failure 429 {object} APIResponse "Too many requests"
// @Router /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	var req validation.LoginRequest
	if err := decodeJSONBody(r, &req); err != nil {
		rw.BadRequest(msgInvalidRequestBody)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(rw, verr)
		return
	}

	ip := clientIP(r)
	result, err := h.backend.AuthWithPassword(ctx, req.Identity, req.Password)
	if err != nil {
		if errors.Is(err, backend.ErrInvalidCredentials) {
			h.publish(ctx, events.NewEvent(events.TypeLoginFailed, "", req.Identity, ip, "invalid_credentials"))
			rw.Unauthorized(msgInvalidCredentials)
			return
		}
		h.publish(ctx, events.NewEvent(events.TypeLoginFailed, "", req.Identity, ip, "backend_error"))
		respondBackendError(rw, err, "")
		return
	}

	rec := result.Record
	token, err := h.tokens.Issue(rec.ID, rec.Email, rec.Verified, result.Token)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("failed to issue session token")
		rw.InternalError(msgInternalError)
		return
	}

	snapshot := auth.UserSnapshot{
		ID:              rec.ID,
		Email:           rec.Email,
		EmailVisibility: rec.EmailVisibility,
		Verified:        rec.Verified,
		Created:         rec.Created,
		Updated:         rec.Updated,
		CollectionID:    rec.CollectionID,
		CollectionName:  rec.CollectionName,
	}
	if err := h.cookies.Establish(w, token, snapshot); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("failed to set session cookies")
		rw.InternalError(msgInternalError)
		return
	}

	h.publish(ctx, events.NewEvent(events.TypeLoginSucceeded, rec.ID, rec.Email, ip, ""))
	writeJSON(w, http.StatusOK, LoginResponse{Success: true, User: snapshot})
}

// Logout clears the session cookie pair. It never fails.
//
// @Summary Log out
// @Description Clears both session cookies. Safe to call without a session.
// @Tags Auth
// @Produce json
// @Success 200 {object} LogoutResponse
// @Router /api/auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var userID, email string
	if token, ok := h.cookies.Read(r); ok {
		if s, err := h.tokens.Verify(token); err == nil {
			userID, email = s.UserID, s.Email
		}
	}

	h.cookies.Clear(w)
	h.publish(r.Context(), events.NewEvent(events.TypeLogout, userID, email, clientIP(r), ""))
	writeJSON(w, http.StatusOK, LogoutResponse{Success: true, Message: "Logged out successfully"})
}

// Session returns the stored user snapshot of a valid session.
//
// @Summary Current session
// @Description Returns the user snapshot. An invalid or expired token clears both cookies and returns 401.
// @Tags Auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} APIResponse "Authentication required"
// @Router /api/auth/session [get]
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		NewResponseWriter(w, r).Unauthorized(msgAuthRequired)
		return
	}

	// The snapshot is display data only; when it is missing or belongs to
	// someone else, rebuild it from the verified token.
	snapshot, ok := h.cookies.ReadSnapshot(r)
	if !ok || snapshot.ID != session.UserID {
		snapshot = auth.UserSnapshot{
			ID:       session.UserID,
			Email:    session.Email,
			Verified: session.Verified,
		}
	}
	writeJSON(w, http.StatusOK, SessionResponse{Success: true, User: snapshot})
}

// Verify checks a session token passed in the body.
//
// @Summary Verify a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param token body VerifyRequest true "Session token"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} APIResponse "Token is required"
// @Failure 401 {object} APIResponse "Invalid token or token expired"
// @Router /api/auth/verify [post]
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req VerifyRequest
	if err := decodeJSONBody(r, &req); err != nil {
		rw.BadRequest(msgInvalidRequestBody)
		return
	}
	if req.Token == "" {
		rw.BadRequest("Token is required")
		return
	}

	session, err := h.tokens.Verify(req.Token)
	switch {
	case errors.Is(err, auth.ErrConfiguration):
		logging.Ctx(r.Context()).Error().Err(err).Msg("session verification misconfigured")
		rw.InternalError(msgInternalError)
		return
	case errors.Is(err, auth.ErrExpiredToken):
		rw.Unauthorized("Token expired")
		return
	case err != nil:
		rw.Unauthorized("Invalid token")
		return
	}

	writeJSON(w, http.StatusOK, VerifyResponse{
		Valid: true,
		User:  TokenUser{ID: session.UserID, Email: session.Email, Verified: session.Verified},
	})
}

// Me returns the identity carried by the verified token.
//
// @Summary Current operator
// @Tags Auth
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} APIResponse "Authentication required"
// @Router /api/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		NewResponseWriter(w, r).Unauthorized(msgAuthRequired)
		return
	}

	now := h.now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, MeResponse{
		Message: "This is a protected endpoint",
		User: MeUser{
			TokenUser:       TokenUser{ID: session.UserID, Email: session.Email, Verified: session.Verified},
			AuthenticatedAt: now,
		},
		ServerTime: now,
	})
}
