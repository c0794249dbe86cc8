// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionLifetime is fixed; tokens are never renewed in place.
const SessionLifetime = 24 * time.Hour

// SessionClaims is the signed payload. The JSON names are part of the wire
// format shared with existing sessions.
type SessionClaims struct {
	UserID          string `json:"userId"`
	Email           string `json:"email"`
	Verified        bool   `json:"verified"`
	PocketBaseToken string `json:"pocketBaseToken"`
	jwt.RegisteredClaims
}

// Session is a verified session token.
type Session struct {
	// UserID is the record id of the operator in the backend.
	UserID string
	// Email is the operator's login identity.
	Email string
	// Verified mirrors the backend's verified flag at login time.
	Verified bool
	// Credential is the backend-issued token used to call the backend as
	// this operator. Never send it to the browser.
	Credential string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// TokenService issues and verifies session tokens.
//
// It holds only immutable state after construction and is safe for
// concurrent use without locking.
type TokenService struct {
	secret []byte
	sealer *CredentialSealer
	now    func() time.Time
}

// TokenOption customizes a TokenService.
type TokenOption func(*TokenService)

// WithCredentialSealer encrypts the embedded credential. A nil sealer keeps
// the credential in clear text inside the signed payload.
func WithCredentialSealer(s *CredentialSealer) TokenOption {
	return func(ts *TokenService) { ts.sealer = s }
}

// WithClock replaces time.Now. Tests use it to pin expiry boundaries.
func WithClock(now func() time.Time) TokenOption {
	return func(ts *TokenService) { ts.now = now }
}

// NewTokenService returns a service signing with secret.
//
// An empty secret returns ErrConfiguration; callers treat that as a startup
// failure rather than falling back to unsigned sessions.
func NewTokenService(secret string, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, ErrConfiguration
	}
	ts := &TokenService{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(ts)
	}
	return ts, nil
}

// Issue signs a new session token.
//
// The payload holds exactly userId, email, verified, the delegated credential
// (sealed when a sealer is configured), iat = now and exp = iat + 24h.
func (s *TokenService) Issue(userID, email string, verified bool, credential string) (string, error) {
	if s == nil || len(s.secret) == 0 {
		return "", ErrConfiguration
	}
	if userID == "" || email == "" || credential == "" {
		return "", ErrInvalidClaims
	}

	sealed, err := s.sealer.Seal(credential)
	if err != nil {
		return "", fmt.Errorf("seal credential: %w", err)
	}

	issuedAt := s.clock().Truncate(time.Second)
	claims := &SessionClaims{
		UserID:          userID,
		Email:           email,
		Verified:        verified,
		PocketBaseToken: sealed,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(SessionLifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, then expiry, and returns the decoded session.
//
// Errors are ErrInvalidToken or ErrExpiredToken (wrapping the parser error)
// so callers can tell a tampered token from a stale one with errors.Is.
func (s *TokenService) Verify(token string) (*Session, error) {
	if s == nil || len(s.secret) == 0 {
		return nil, ErrConfiguration
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.clock),
	)

	claims := &SessionClaims{}
	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.UserID == "" || claims.Email == "" || claims.PocketBaseToken == "" || claims.IssuedAt == nil {
		return nil, fmt.Errorf("%w: missing required claims", ErrInvalidToken)
	}

	credential, err := s.sealer.Open(claims.PocketBaseToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return &Session{
		UserID:     claims.UserID,
		Email:      claims.Email,
		Verified:   claims.Verified,
		Credential: credential,
		IssuedAt:   claims.IssuedAt.Time,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}

func (s *TokenService) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
