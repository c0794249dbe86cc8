// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", "test-secret-0123456789-0123456789")
	t.Setenv("POCKETBASE_PUBLIC_BASE_URL", "https://pb.example.com/")
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Server.Environment != EnvDevelopment {
		t.Errorf("Server.Environment = %q, want development", cfg.Server.Environment)
	}
	if cfg.Security.JWTSecret != "" {
		t.Error("Security.JWTSecret must have no default")
	}
	if len(cfg.Security.TrustedProxies) != 0 {
		t.Errorf("Security.TrustedProxies = %v, want none trusted by default", cfg.Security.TrustedProxies)
	}
	if cfg.Backend.AuthCollection != "_superusers" {
		t.Errorf("Backend.AuthCollection = %q, want _superusers", cfg.Backend.AuthCollection)
	}
	if cfg.OMDB.CacheTTL != 24*time.Hour {
		t.Errorf("OMDB.CacheTTL = %v, want 24h", cfg.OMDB.CacheTTL)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"JWT_SECRET", "security.jwt_secret"},
		{"POCKETBASE_PUBLIC_BASE_URL", "backend.url"},
		{"ENVIRONMENT", "server.environment"},
		{"OMDB_API_KEY", "omdb.api_key"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"HOME", ""},
		{"PATH", ""},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("OMDB_CACHE_TTL", "2h")
	t.Setenv("DISABLE_RATE_LIMIT", "true")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.0.2.1")
	t.Setenv("STREAM_ALLOWED_DOMAINS", "cdn.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if !cfg.Server.IsProduction() {
		t.Error("expected production environment")
	}
	if cfg.Backend.URL != "https://pb.example.com" {
		t.Errorf("Backend.URL = %q, trailing slash should be trimmed", cfg.Backend.URL)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.OMDB.CacheTTL != 2*time.Hour {
		t.Errorf("OMDB.CacheTTL = %v, want 2h", cfg.OMDB.CacheTTL)
	}
	if !cfg.Security.RateLimitDisabled {
		t.Error("RateLimitDisabled should be true")
	}
	if len(cfg.Security.TrustedProxies) != 2 || cfg.Security.TrustedProxies[0] != "10.0.0.0/8" {
		t.Errorf("TrustedProxies = %v", cfg.Security.TrustedProxies)
	}
	if len(cfg.Security.StreamAllowedDomains) != 1 || cfg.Security.StreamAllowedDomains[0] != "cdn.example.com" {
		t.Errorf("StreamAllowedDomains = %v", cfg.Security.StreamAllowedDomains)
	}
}

func TestLoadFromFile(t *testing.T) {
	setRequiredEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  port: 9090\nbackend:\n  auth_collection: users\nlogging:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Backend.AuthCollection != "users" {
		t.Errorf("Backend.AuthCollection = %q, want users", cfg.Backend.AuthCollection)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadMissingSecretIsFatal(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail without JWT_SECRET")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET is required") {
		t.Errorf("unexpected error: %v", err)
	}
}
