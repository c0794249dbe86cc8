// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package events carries session lifecycle events (logins, logouts and gate
// rejections) over Watermill.
//
// The default transport is Watermill's in-process gochannel. Building with
// -tags=nats and setting NATS_URL switches to core NATS through
// watermill-nats, so several server instances can feed one audit consumer.
//
// Publishing is fire-and-forget: a failed publish is logged and counted but
// never fails the HTTP request that produced the event.
package events
