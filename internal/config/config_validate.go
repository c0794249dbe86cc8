// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/tomtom215/marquee/internal/logging"
)

// MinProductionSecretLength is the shortest JWT_SECRET accepted in production.
const MinProductionSecretLength = 32

// Validate checks that required configuration is present and consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateBackend(); err != nil {
		return err
	}
	if err := c.validateOMDB(); err != nil {
		return err
	}
	if err := c.validateEvents(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case EnvDevelopment, EnvProduction, EnvTest:
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be one of development, production, test; got %q", c.Server.Environment)
	}
}

// validateSecurity treats a missing signing secret as fatal: the server must
// never run in a mode where it could hand out unsigned sessions.
func (c *Config) validateSecurity() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Server.IsProduction() && len(c.Security.JWTSecret) < MinProductionSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters in production", MinProductionSecretLength)
	}
	for _, p := range c.Security.TrustedProxies {
		if !validProxyEntry(p) {
			return fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP address or CIDR", p)
		}
	}
	for _, d := range c.Security.StreamAllowedDomains {
		if d == "" || strings.ContainsAny(d, "/:@ ") {
			return fmt.Errorf("STREAM_ALLOWED_DOMAINS entry %q must be a bare host name", d)
		}
	}
	return nil
}

func validProxyEntry(entry string) bool {
	if strings.Contains(entry, "/") {
		_, err := netip.ParsePrefix(entry)
		return err == nil
	}
	_, err := netip.ParseAddr(entry)
	return err == nil
}

func (c *Config) validateBackend() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("POCKETBASE_PUBLIC_BASE_URL is required")
	}
	if err := validateHTTPURL(c.Backend.URL, "POCKETBASE_PUBLIC_BASE_URL"); err != nil {
		return err
	}
	if strings.TrimSpace(c.Backend.AuthCollection) == "" {
		return fmt.Errorf("POCKETBASE_AUTH_COLLECTION must not be empty")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("POCKETBASE_TIMEOUT must be positive, got %v", c.Backend.Timeout)
	}
	return nil
}

func (c *Config) validateOMDB() error {
	if err := validateHTTPURL(c.OMDB.BaseURL, "OMDB_BASE_URL"); err != nil {
		return err
	}
	if c.OMDB.RequestsPerSecond <= 0 {
		return fmt.Errorf("OMDB_RPS must be positive, got %v", c.OMDB.RequestsPerSecond)
	}
	if c.OMDB.Burst < 1 {
		return fmt.Errorf("OMDB_BURST must be at least 1, got %d", c.OMDB.Burst)
	}
	if c.OMDB.CacheTTL <= 0 {
		return fmt.Errorf("OMDB_CACHE_TTL must be positive, got %v", c.OMDB.CacheTTL)
	}
	return nil
}

func (c *Config) validateEvents() error {
	if c.Events.NATSURL == "" {
		return nil
	}
	if err := validateNATSURL(c.Events.NATSURL); err != nil {
		return fmt.Errorf("NATS_URL: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a known level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}
