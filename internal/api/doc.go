// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api provides the HTTP layer of Marquee.

Key Components:

  - Router: Chi route table, global middleware and per-route session modes
  - Handler: auth, media, category, OMDB and health handlers
  - ResponseWriter: the APIResponse envelope used by non-auth endpoints
  - ChiMiddleware: CORS and the fixed-window rate limiters

Session Modes:

Every route is public, Optional or Required. Optional routes forward the
caller's delegated backend credential when a valid session exists and
proceed anonymously otherwise. Required routes are rejected by the session
gate before the handler or the backend is reached. /api/auth/session uses
the clearing variant, which also removes a stale cookie pair.

Wire Formats:

The auth endpoints keep their historical bodies:

	POST /api/auth/login   {"success":true,"user":{...}}
	POST /api/auth/logout  {"success":true,"message":"Logged out successfully"}
	POST /api/auth/verify  {"valid":true,"user":{"id","email","verified"}}

Everything else, and every error, uses the envelope:

	{"success":false,"error":{"code":"UNAUTHORIZED","message":"Authentication required"},"meta":{...}}

Rate Limits:

Login allows 5 requests per minute per client IP; media writes 20; category
writes and OMDB lookups 30. Limits are fixed windows opened by the first
request and can be disabled with DISABLE_RATE_LIMIT for tests.
*/
package api
