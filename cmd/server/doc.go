// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee fronts a record backend holding a media catalog (films, embeds and
their categories). Operators log in with backend credentials; the server
issues a signed session cookie carrying the backend credential and forwards
it on every catalog call, so browsers never see the backend token.

# Process Layout

	RootSupervisor ("marquee")
	├── EventsSupervisor ("events-layer")
	│   └── Audit consumer (session events -> security log)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Startup order:

 1. Configuration (Koanf v2: defaults, optional YAML file, environment)
 2. Logging (zerolog, with slog bridges for suture and watermill)
 3. Session tokens and cookies
 4. Backend client and OMDB client (Badger cache when an API key is set)
 5. Event bus (in-process, or NATS with -tags nats)
 6. Router and supervisor tree

SIGINT and SIGTERM cancel the root context; the HTTP server drains for up
to ten seconds before the process exits.

# Configuration

The important environment variables:

	JWT_SECRET                  session signing secret (required)
	SESSION_CREDENTIAL_KEY      optional key sealing the backend credential
	POCKETBASE_PUBLIC_BASE_URL  record backend base URL (required)
	ENVIRONMENT                 "production" turns on Secure cookies
	OMDB_API_KEY                enables /api/omdb lookups
	NATS_URL                    event transport when built with -tags nats
	CORS_ORIGINS                comma separated allowed origins
	TRUSTED_PROXIES             proxy IPs/CIDRs allowed to set X-Forwarded-For
	STREAM_ALLOWED_DOMAINS      hosts /api/video/stream may fetch from
	DISABLE_RATE_LIMIT          disables the per-IP limiters

See internal/config for the full list.
*/
package main
