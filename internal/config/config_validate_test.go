// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = "dev-secret"
	cfg.Backend.URL = "http://127.0.0.1:8090"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid development", func(*Config) {}, ""},
		{"missing secret", func(c *Config) { c.Security.JWTSecret = "" }, "JWT_SECRET is required"},
		{"short secret in production", func(c *Config) { c.Server.Environment = EnvProduction }, "at least 32"},
		{"long secret in production", func(c *Config) {
			c.Server.Environment = EnvProduction
			c.Security.JWTSecret = strings.Repeat("s", MinProductionSecretLength)
		}, ""},
		{"unknown environment", func(c *Config) { c.Server.Environment = "staging" }, "ENVIRONMENT"},
		{"missing backend", func(c *Config) { c.Backend.URL = "" }, "POCKETBASE_PUBLIC_BASE_URL is required"},
		{"backend bad scheme", func(c *Config) { c.Backend.URL = "ftp://pb" }, "scheme must be http or https"},
		{"backend with query", func(c *Config) { c.Backend.URL = "http://pb?x=1" }, "query parameters"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad omdb rps", func(c *Config) { c.OMDB.RequestsPerSecond = 0 }, "OMDB_RPS"},
		{"bad nats url", func(c *Config) { c.Events.NATSURL = "http://nats" }, "NATS_URL"},
		{"good nats url", func(c *Config) { c.Events.NATSURL = "nats://127.0.0.1:4222" }, ""},
		{"trusted proxy cidr", func(c *Config) { c.Security.TrustedProxies = []string{"10.0.0.0/8", "192.0.2.1"} }, ""},
		{"trusted proxy hostname", func(c *Config) { c.Security.TrustedProxies = []string{"proxy.local"} }, "TRUSTED_PROXIES"},
		{"stream domain with scheme", func(c *Config) { c.Security.StreamAllowedDomains = []string{"https://cdn.example.com"} }, "STREAM_ALLOWED_DOMAINS"},
		{"stream domain bare host", func(c *Config) { c.Security.StreamAllowedDomains = []string{"cdn.example.com"} }, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "chatty" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestStreamHostsIncludesBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Security.StreamAllowedDomains = []string{"cdn.example.com"}

	hosts := cfg.StreamHosts()
	if len(hosts) != 2 || hosts[0] != "cdn.example.com" || hosts[1] != "127.0.0.1" {
		t.Errorf("StreamHosts() = %v, want [cdn.example.com 127.0.0.1]", hosts)
	}
	if len(cfg.Security.StreamAllowedDomains) != 1 {
		t.Error("StreamHosts() modified the configured allowlist")
	}
}
