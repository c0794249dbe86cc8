// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package auth

import "errors"

var (
	// ErrConfiguration means no signing secret is configured. It is fatal:
	// no token is ever issued or accepted in this state.
	ErrConfiguration = errors.New("session signing secret not configured")

	// ErrInvalidToken covers bad signatures, malformed tokens, unexpected
	// algorithms, missing claims and credentials that fail to unseal.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrExpiredToken means the signature verified but exp <= now.
	ErrExpiredToken = errors.New("session token expired")

	// ErrInvalidClaims is returned by Issue for empty identity fields.
	ErrInvalidClaims = errors.New("session claims incomplete")
)
