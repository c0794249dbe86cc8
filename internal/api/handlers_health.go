// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"time"
)

const healthPingTimeout = 2 * time.Second

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status  string  `json:"status"`
	Version string  `json:"version,omitempty"`
	Uptime  float64 `json:"uptime"`
	Backend string  `json:"backend"`
}

// Health reports process liveness and backend reachability. A down backend
// degrades the status but still answers 200 so the process is not restarted
// for someone else's outage.
//
// @Summary Get system health status
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	status := HealthStatus{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
		Backend: "ok",
	}
	if err := h.backend.Ping(ctx); err != nil {
		status.Status = "degraded"
		status.Backend = "unreachable"
	}
	NewResponseWriter(w, r).Success(status)
}
