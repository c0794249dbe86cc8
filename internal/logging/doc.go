// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package logging wraps zerolog for the whole server.

A single global logger is configured once from main via Init and read through
the level helpers:

	logging.Init(logging.Config{Level: "info", Format: "json"})
	logging.Info().Str("addr", addr).Msg("HTTP server listening")

Request-scoped logging picks up the request and correlation IDs stored in the
context by the HTTP middleware:

	logging.Ctx(r.Context()).Warn().Err(err).Msg("backend call failed")

Authentication events go through SecurityLogger, which masks emails and
tokens before they reach the log stream. Two adapters route third-party
loggers into zerolog: SlogHandler (used by sutureslog) and WatermillLogger
(used by the session event bus).

Environment variables read by the config package:

  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: include file:line (default: false)
*/
package logging
