// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/logging"
)

const (
	// streamTokenMaxAge is how long a ?t= token stays usable.
	streamTokenMaxAge = 24 * time.Hour

	// streamHeaderTimeout bounds the wait for upstream response headers.
	// The body itself is not time-limited.
	streamHeaderTimeout = 30 * time.Second

	// maxStreamRedirects caps redirect hops, each of which is re-checked
	// against the allowlist.
	maxStreamRedirects = 5
)

// StreamConfig configures the authenticated video proxy.
type StreamConfig struct {
	// AllowedHosts are upstream host names; subdomains match too.
	AllowedHosts []string
	// HTTPClient fetches upstream media. Its CheckRedirect is replaced.
	HTTPClient *http.Client
}

var errStreamToken = errors.New("malformed stream token")

// streamProxy holds the allowlist and client used by StreamVideo.
type streamProxy struct {
	hosts  []string
	client *http.Client
}

func newStreamProxy(cfg StreamConfig) *streamProxy {
	p := &streamProxy{}
	for _, host := range cfg.AllowedHosts {
		if host = normalizeHost(host); host != "" {
			p.hosts = append(p.hosts, host)
		}
	}

	var client http.Client
	if cfg.HTTPClient != nil {
		client = *cfg.HTTPClient
	} else {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.ResponseHeaderTimeout = streamHeaderTimeout
		client.Transport = transport
	}
	client.CheckRedirect = p.checkRedirect
	p.client = &client
	return p
}

func normalizeHost(host string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
}

// allowed matches host exactly or as a subdomain of an allowlisted entry.
func (p *streamProxy) allowed(host string) bool {
	host = normalizeHost(host)
	if host == "" {
		return false
	}
	for _, d := range p.hosts {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func (p *streamProxy) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxStreamRedirects {
		return fmt.Errorf("stopped after %d redirects", maxStreamRedirects)
	}
	if !validStreamURL(req.URL) || !p.allowed(req.URL.Hostname()) {
		return fmt.Errorf("redirect to %q is not allowed", req.URL.Host)
	}
	return nil
}

func validStreamURL(u *url.URL) bool {
	return (u.Scheme == "http" || u.Scheme == "https") && u.Hostname() != ""
}

// decodeStreamToken unpacks base64("<url>|<unix millis>").
func decodeStreamToken(token string) (string, time.Time, error) {
	var raw []byte
	var err error
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding, base64.RawStdEncoding, base64.RawURLEncoding} {
		if raw, err = enc.DecodeString(token); err == nil {
			break
		}
	}
	if err != nil {
		return "", time.Time{}, errStreamToken
	}

	target, stamp, ok := strings.Cut(string(raw), "|")
	if !ok || target == "" {
		return "", time.Time{}, errStreamToken
	}
	millis, err := strconv.ParseInt(strings.TrimSpace(stamp), 10, 64)
	if err != nil {
		return "", time.Time{}, errStreamToken
	}
	return target, time.UnixMilli(millis), nil
}

// StreamVideo proxies a remote video for a signed-in operator.
//
// The t parameter is base64 of "<url>|<unix millis>". Tokens older than 24
// hours are refused, as are non-http(s) URLs and hosts outside the allowlist.
// Range requests pass through so players can seek.
//
// @Summary Stream a video through the server
// @Description Proxies an allowlisted http(s) video. Range requests are forwarded.
// @Tags Media
// @Produce video/mp4
// @Param t query string true "base64 of url|unix-millis"
// @Param Range header string false "Byte range"
// @Success 200 {file} binary
// @Success 206 {file} binary
// @Failure 400 {object} APIResponse "Missing access token"
// @Failure 401 {object} APIResponse "Authentication required"
// @Failure 403 {object} APIResponse "Token expired"
// @Failure 404 {object} APIResponse "Video not found"
// @Failure 502 {object} APIResponse "Failed to stream video"
// @Router /api/video/stream [get]
func (h *Handler) StreamVideo(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	token := r.URL.Query().Get("t")
	if token == "" {
		rw.BadRequest(msgStreamTokenMissing)
		return
	}
	target, issued, err := decodeStreamToken(token)
	if err != nil {
		rw.BadRequest(msgStreamTokenInvalid)
		return
	}
	if h.now().Sub(issued) > streamTokenMaxAge {
		rw.Forbidden(msgStreamTokenExpired)
		return
	}

	u, err := url.Parse(target)
	if err != nil || !validStreamURL(u) {
		rw.BadRequest(msgInvalidVideoURL)
		return
	}
	if !h.stream.allowed(u.Hostname()) {
		logging.Ctx(r.Context()).Warn().
			Str("host", sanitizeLogValue(u.Hostname())).
			Msg("video stream host not allowed")
		rw.Forbidden(msgDomainNotAllowed)
		return
	}

	upstream, err := http.NewRequestWithContext(r.Context(), http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		rw.BadRequest(msgInvalidVideoURL)
		return
	}
	if rng := r.Header.Get("Range"); rng != "" {
		upstream.Header.Set("Range", rng)
	}

	resp, err := h.stream.client.Do(upstream)
	if err != nil {
		rw.ExternalServiceError(http.StatusBadGateway, "stream", msgStreamUnavailable, err)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		logging.Ctx(r.Context()).Debug().
			Str("host", u.Hostname()).
			Int("status", resp.StatusCode).
			Msg("video upstream returned error status")
		rw.NotFound(msgVideoNotFound)
		return
	}

	event := logging.Ctx(r.Context()).Info().Str("host", u.Hostname())
	if session, ok := auth.SessionFromContext(r.Context()); ok {
		event = event.Str("user_id", session.UserID)
	}
	event.Msg("video stream opened")

	header := w.Header()
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "video/mp4"
	}
	header.Set("Content-Type", contentType)
	for _, name := range []string{"Content-Length", "Content-Range"} {
		if v := resp.Header.Get(name); v != "" {
			header.Set(name, v)
		}
	}
	header.Set("Accept-Ranges", "bytes")
	header.Set("Cache-Control", "private, no-cache, no-store, must-revalidate")
	header.Set("X-Content-Protected", "true")

	// Streams outlive the server write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Str("host", u.Hostname()).Msg("video stream ended early")
	}
}
