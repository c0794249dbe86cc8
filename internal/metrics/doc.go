// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics provides Prometheus metrics for the server.

All collectors are registered on the default registry through promauto and
exposed at /metrics:

	curl http://localhost:3000/metrics

# Available Metrics

HTTP:
  - marquee_api_requests_total{method, endpoint, status_code}
  - marquee_api_request_duration_seconds{method, endpoint}
  - marquee_api_active_requests
  - marquee_api_rate_limit_hits_total{limiter}

Sessions:
  - marquee_auth_events_total{type}: login, logout and rejection events seen by
    the audit consumer
  - marquee_session_decisions_total{state}: gate outcomes

Backend and OMDB:
  - marquee_backend_requests_total{operation, status}
  - marquee_backend_request_duration_seconds{operation}
  - marquee_omdb_lookups_total{source}: cache, remote, error

Circuit breakers (label name = breaker name):
  - marquee_circuit_breaker_state: 0=closed, 1=half-open, 2=open
  - marquee_circuit_breaker_requests_total{name, result}
  - marquee_circuit_breaker_state_transitions_total{name, from_state, to_state}

Events:
  - marquee_events_published_total{topic, result}

Endpoint labels use chi route patterns ("/api/media/{id}"), never raw paths,
to keep cardinality bounded.
*/
package metrics
