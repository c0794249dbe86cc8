// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// @title Marquee API
// @version 1.0
// @description Session-authenticated media catalog API in front of a record backend.
// @description
// @description ## Authentication
// @description
// @description Write endpoints require a session. `POST /api/auth/login` sets an
// @description HTTP-only `auth_token` cookie that later requests carry automatically.
// @description Read endpoints accept anonymous requests and forward the session when present.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "status": "error",
// @description   "error": {"code": "ERROR_CODE", "message": "Human-readable message"},
// @description   "metadata": {"timestamp": "2026-01-01T12:00:00Z"}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/marquee/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
// @schemes http https
//
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name auth_token
// @description Signed session token set by /api/auth/login.
//
// @tag.name Auth
// @tag.description Login, logout and session inspection
//
// @tag.name Media
// @tag.description Media catalog records
//
// @tag.name Categories
// @tag.description Category records
//
// @tag.name OMDB
// @tag.description Film metadata lookups
//
// @tag.name Health
// @tag.description Liveness and dependency status

package main
