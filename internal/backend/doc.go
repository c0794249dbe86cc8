// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package backend is the client for the PocketBase-compatible record store that
owns all catalog data (media, categories, operator accounts and files).

Every call takes the caller's delegated credential. An empty credential means
the request is sent anonymously: no Authorization header at all, never an
empty "Bearer ". Responses are decoded into fixed structs and checked for the
fields the server relies on; anything else is ErrMalformedResponse.

Calls run through a gobreaker circuit breaker. Client errors (4xx) are passed
back as *StatusError and do not count toward tripping the breaker; transport
failures and 5xx do. An open breaker surfaces as ErrUnavailable.
*/
package backend
