// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "github.com/tomtom215/marquee/docs" // registers the swagger spec
	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/backend"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/middleware"
	"github.com/tomtom215/marquee/internal/omdb"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Version:   version,
	})
	metrics.SetAppInfo(version, runtime.Version())

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("backend_url", cfg.Backend.URL).
		Msg("Starting Marquee")

	tokens, cookies := initSessions(cfg)
	backendClient := backend.NewClient(backend.Config{
		BaseURL:        cfg.Backend.URL,
		AuthCollection: cfg.Backend.AuthCollection,
		Timeout:        cfg.Backend.Timeout,
	})

	movieLookup, omdbCache := initOMDB(cfg)
	if omdbCache != nil {
		defer func() {
			if err := omdbCache.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing OMDB cache")
			}
		}()
	}

	bus, err := events.NewBus(events.Config{NATSURL: cfg.Events.NATSURL, Buffer: cfg.Events.Buffer})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open event bus")
	}
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()
	logging.Info().Str("transport", bus.Transport()).Msg("Event bus ready")

	handler := api.NewHandler(api.HandlerConfig{
		Tokens:  tokens,
		Cookies: cookies,
		Backend: backendClient,
		OMDB:    movieLookup,
		Events:  bus,
		Version: version,
		Stream:  api.StreamConfig{AllowedHosts: cfg.StreamHosts()},
	})

	mwConfig := api.DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwConfig.RateLimitDisabled = cfg.Security.RateLimitDisabled
	trustedProxies, err := middleware.ParseTrustedProxies(cfg.Security.TrustedProxies)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid trusted proxy configuration")
	}
	mwConfig.TrustedProxies = trustedProxies
	if len(cfg.Security.TrustedProxies) > 0 {
		logging.Info().Strs("trusted_proxies", cfg.Security.TrustedProxies).Msg("Forwarding headers trusted from configured proxies")
	}
	if mwConfig.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	router := api.NewRouter(handler, api.NewSessionGate(tokens, cookies, bus), api.NewChiMiddleware(mwConfig))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  shutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddEventService(services.NewAuditService(events.NewAuditConsumer(bus, logging.NewSecurityLogger())))
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checkBackend(ctx, backendClient)

	errCh := tree.ServeBackground(ctx)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}
	logging.Info().Msg("Marquee stopped gracefully")
}

// initSessions builds the token service and cookie pair. A missing secret
// is fatal: without it no session can be issued or checked.
func initSessions(cfg *config.Config) (*auth.TokenService, *auth.SessionCookies) {
	sealer, err := auth.NewCredentialSealer(cfg.Security.CredentialKey)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid SESSION_CREDENTIAL_KEY")
	}
	if sealer == nil {
		logging.Warn().Msg("SESSION_CREDENTIAL_KEY not set: backend credentials are signed but not encrypted inside session tokens")
	}

	tokens, err := auth.NewTokenService(cfg.Security.JWTSecret, auth.WithCredentialSealer(sealer))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize session tokens")
	}

	cookies := auth.NewSessionCookies(auth.CookieConfig{Secure: cfg.Server.IsProduction()})
	if !cfg.Server.IsProduction() {
		logging.Warn().Msg("Session cookies are sent without the Secure flag (ENVIRONMENT is not production)")
	}
	return tokens, cookies
}

// initOMDB returns the lookup client and its cache. The client is always
// returned; without an API key lookups answer "not configured".
func initOMDB(cfg *config.Config) (api.MovieLookup, *omdb.BadgerCache) {
	var cache *omdb.BadgerCache
	if cfg.OMDB.APIKey != "" {
		c, err := omdb.OpenBadgerCache(cfg.OMDB.CacheDir, cfg.OMDB.CacheTTL)
		if err != nil {
			logging.Warn().Err(err).Msg("OMDB cache unavailable, lookups will not be cached")
		} else {
			cache = c
		}
	} else {
		logging.Info().Msg("OMDB_API_KEY not set, OMDB lookups disabled")
	}

	ocfg := omdb.Config{
		APIKey:            cfg.OMDB.APIKey,
		BaseURL:           cfg.OMDB.BaseURL,
		Timeout:           cfg.OMDB.Timeout,
		RequestsPerSecond: cfg.OMDB.RequestsPerSecond,
		Burst:             cfg.OMDB.Burst,
	}
	if cache != nil {
		ocfg.Cache = cache
	}
	return omdb.NewClient(ocfg), cache
}

// checkBackend logs whether the record backend answers at startup. The
// server starts either way; /health keeps reporting reachability.
func checkBackend(ctx context.Context, client *backend.Client) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		logging.Warn().Err(err).Msg("Media backend not reachable at startup")
		return
	}
	logging.Info().Msg("Media backend reachable")
}
