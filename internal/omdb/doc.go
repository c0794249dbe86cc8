// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package omdb looks up movie metadata by IMDb id.
//
// Lookups go through three layers:
//
//   - a BadgerDB cache with per-entry TTLs (in-memory when no directory is set)
//   - a token-bucket throttle (golang.org/x/time/rate) on outbound calls
//   - a circuit breaker around the OMDB API itself
//
// Only successful answers are cached. "Movie not found" answers are returned
// as *NotFoundError and are not counted as breaker failures.
package omdb
