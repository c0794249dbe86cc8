// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package auth implements the server-issued session.

At login the record store hands back its own credential for the operator.
The server never gives that credential to the browser directly. Instead it
issues a session token of its own (HS256, 24 hour lifetime) that carries the
credential inside, and binds the token to an http-only cookie.

Components, leaves first:

  - TokenService issues and verifies session tokens. Verification failures are
    ErrInvalidToken (bad signature, malformed, unsealable credential) or
    ErrExpiredToken; a service without a secret fails with ErrConfiguration.
  - CredentialSealer optionally encrypts the embedded credential (AES-GCM,
    HKDF-derived key) so a leaked token does not expose it in clear text.
  - SessionCookies writes and clears the auth_token / auth_user cookie pair.
    Both cookies are always set together and cleared together.
  - Gate decides, per request, between NoToken, TokenInvalidOrExpired and
    Authenticated, and enforces it in Required or Optional mode.

Handlers read the caller through SessionFromContext and call the record store
with DelegatedCredential, which is empty for anonymous callers.
*/
package auth
