// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config loads and validates server configuration.

Sources are layered with koanf, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, then config.yaml / config.yml in the
    working directory, then /etc/marquee/config.yaml
 3. Environment variables, mapped explicitly by envTransformFunc

# Environment Variables

Server:
  - HTTP_HOST (default 0.0.0.0), HTTP_PORT (default 3000), HTTP_TIMEOUT (default 30s)
  - ENVIRONMENT: development, production or test (default development).
    Session cookies carry the Secure flag only in production.

Security:
  - JWT_SECRET: session token signing secret. Required; at least 32
    characters in production.
  - SESSION_CREDENTIAL_KEY: base64 key (16+ bytes). When set, the backend
    credential embedded in session tokens is encrypted.
  - CORS_ORIGINS: comma-separated allowed origins
  - DISABLE_RATE_LIMIT: turn off per-route rate limits

Backend:
  - POCKETBASE_PUBLIC_BASE_URL: record-store base URL (required)
  - POCKETBASE_AUTH_COLLECTION (default _superusers)
  - POCKETBASE_TIMEOUT (default 30s)

OMDB:
  - OMDB_API_KEY, OMDB_BASE_URL, OMDB_CACHE_DIR, OMDB_CACHE_TTL, OMDB_RPS

Events:
  - NATS_URL: publish session events to NATS (requires the nats build tag)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config
