// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides infrastructure HTTP middleware shared by every route.

Key Components:

  - RequestID: accepts a sane upstream X-Request-ID or generates a UUID, and
    seeds the logging context with request and correlation IDs
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled by
    the chi route pattern so record ids do not explode label cardinality
  - Compression: gzip for clients that accept it
  - RealIP: client address from X-Forwarded-For or X-Real-IP, honoured only
    when the peer is a configured trusted proxy

All middleware has the chi signature func(http.Handler) http.Handler:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

Session enforcement is not here; it lives in auth.Gate.
*/
package middleware
