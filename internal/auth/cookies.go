// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package auth

import (
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
)

// Cookie names. Existing browsers hold these names; do not rename.
const (
	TokenCookieName = "auth_token"
	UserCookieName  = "auth_user"
)

// UserSnapshot is the public identity copy stored next to the token.
// It is a display hint only and must never authorize anything.
type UserSnapshot struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	EmailVisibility bool   `json:"emailVisibility"`
	Verified        bool   `json:"verified"`
	Created         string `json:"created"`
	Updated         string `json:"updated"`
	CollectionID    string `json:"collectionId"`
	CollectionName  string `json:"collectionName"`
}

// CookieConfig holds the shared cookie attributes.
type CookieConfig struct {
	// Secure sets the Secure flag; on in production only.
	Secure bool
	// Domain is optional; empty means host-only cookies.
	Domain string
}

// SessionCookies binds session tokens to the auth_token / auth_user pair.
type SessionCookies struct {
	config CookieConfig
}

// NewSessionCookies returns an adapter using cfg for every cookie it writes.
func NewSessionCookies(cfg CookieConfig) *SessionCookies {
	return &SessionCookies{config: cfg}
}

// Establish sets both cookies with identical attributes and a 24h max-age.
func (c *SessionCookies) Establish(w http.ResponseWriter, token string, user UserSnapshot) error {
	snapshot, err := json.Marshal(user)
	if err != nil {
		return err
	}
	maxAge := int(SessionLifetime.Seconds())
	http.SetCookie(w, c.cookie(TokenCookieName, token, maxAge))
	// http.SetCookie drops '"' from values, so the JSON is query-escaped.
	http.SetCookie(w, c.cookie(UserCookieName, url.QueryEscape(string(snapshot)), maxAge))
	return nil
}

// Read returns the signed token cookie. A missing or empty cookie is reported
// as ok=false, not as an error.
func (c *SessionCookies) Read(r *http.Request) (string, bool) {
	ck, err := r.Cookie(TokenCookieName)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

// ReadSnapshot decodes the auth_user cookie.
func (c *SessionCookies) ReadSnapshot(r *http.Request) (UserSnapshot, bool) {
	var snap UserSnapshot
	ck, err := r.Cookie(UserCookieName)
	if err != nil || ck.Value == "" {
		return snap, false
	}
	raw, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return snap, false
	}
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return snap, false
	}
	return snap, snap.ID != ""
}

// Clear expires both cookies. It is safe to call when nothing was set.
func (c *SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(TokenCookieName, "", -1))
	http.SetCookie(w, c.cookie(UserCookieName, "", -1))
}

func (c *SessionCookies) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.config.Domain,
		MaxAge:   maxAge,
		Secure:   c.config.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}
