// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import "time"

// Environment names accepted in server.environment.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Backend  BackendConfig  `koanf:"backend"`
	OMDB     OMDBConfig     `koanf:"omdb"`
	Events   EventsConfig   `koanf:"events"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// IsProduction reports whether the server runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == EnvProduction
}

// SecurityConfig holds session signing and request-guard settings.
type SecurityConfig struct {
	// JWTSecret signs session tokens (HS256).
	JWTSecret string `koanf:"jwt_secret"`

	// CredentialKey is a base64 master key. When non-empty the delegated
	// backend credential inside session tokens is AES-GCM sealed.
	CredentialKey string `koanf:"credential_key"`

	CORSOrigins       []string `koanf:"cors_origins"`
	RateLimitDisabled bool     `koanf:"rate_limit_disabled"`

	// TrustedProxies lists peer IPs or CIDRs whose X-Forwarded-For and
	// X-Real-IP headers are believed. Empty trusts nobody.
	TrustedProxies []string `koanf:"trusted_proxies"`

	// StreamAllowedDomains are the hosts the video stream proxy may fetch
	// from. Subdomains match. The backend host is always allowed.
	StreamAllowedDomains []string `koanf:"stream_allowed_domains"`
}

// BackendConfig points at the PocketBase-compatible record store.
type BackendConfig struct {
	URL            string        `koanf:"url"`
	AuthCollection string        `koanf:"auth_collection"`
	Timeout        time.Duration `koanf:"timeout"`
}

// OMDBConfig configures movie metadata lookups.
type OMDBConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	CacheDir          string        `koanf:"cache_dir"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	Timeout           time.Duration `koanf:"timeout"`
}

// EventsConfig configures the session event bus.
type EventsConfig struct {
	// NATSURL selects the NATS transport; empty keeps events in process.
	NATSURL string `koanf:"nats_url"`
	// Buffer is the in-process channel buffer per subscriber.
	Buffer int64 `koanf:"buffer"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
