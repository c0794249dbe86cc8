// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/auth"
	"github.com/tomtom215/marquee/internal/backend"
	"github.com/tomtom215/marquee/internal/events"
)

const (
	testJWTSecret  = "test_secret_with_at_least_32_characters_for_testing"
	testIdentity   = "admin@example.com"
	testPassword   = "correct-password"
	testCredential = "pb-token-123"
	testUserID     = "user1"
)

const mediaRecordJSON = `{
	"id": "media1",
	"collectionId": "pbc_media",
	"collectionName": "media",
	"title": "Big Buck Bunny",
	"type": "stream",
	"imdb": "tt1254207",
	"media_url": "https://cdn.example.com/bbb.mp4",
	"description": "A giant rabbit",
	"iframe": "",
	"torrent": "",
	"thumbnail": "bbb.jpg",
	"magnet_link": "",
	"categories": ["cat1"],
	"expand": {"categories": [{"id": "cat1", "name": "Animation", "slug": "animation", "active": true}]},
	"created": "2025-01-02 10:00:00.000Z",
	"updated": "2025-01-02 10:00:00.000Z"
}`

const categoryRecordJSON = `{
	"id": "cat1",
	"collectionId": "pbc_categories",
	"collectionName": "categories",
	"name": "Animation",
	"description": "",
	"slug": "animation",
	"color": "#ff8800",
	"icon": "",
	"sort_order": 1,
	"active": true,
	"created": "2025-01-02 10:00:00.000Z",
	"updated": "2025-01-02 10:00:00.000Z"
}`

const notFoundJSON = `{"code":404,"message":"The requested resource wasn't found.","data":{}}`

// backendCall is one request seen by the fake backend.
type backendCall struct {
	Method        string
	Path          string
	Query         url.Values
	Authorization string
}

// fakeBackend imitates the record backend endpoints the handlers use.
type fakeBackend struct {
	server *httptest.Server

	mu         sync.Mutex
	calls      []backendCall
	lastValues url.Values
	lastFiles  map[string]string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/collections/_superusers/auth-with-password", fb.handleAuth)
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeRaw(w, http.StatusOK, `{"code":200,"message":"API is healthy.","data":{}}`)
	})
	mux.HandleFunc("GET /api/collections/media/records", func(w http.ResponseWriter, _ *http.Request) {
		writeRaw(w, http.StatusOK, `{"page":1,"perPage":30,"totalPages":1,"totalItems":1,"items":[`+mediaRecordJSON+`]}`)
	})
	mux.HandleFunc("GET /api/collections/media/records/{id}", fb.handleGet("media1", mediaRecordJSON))
	mux.HandleFunc("POST /api/collections/media/records", fb.handleWrite(mediaRecordJSON))
	mux.HandleFunc("PATCH /api/collections/media/records/{id}", fb.handleWrite(mediaRecordJSON))
	mux.HandleFunc("DELETE /api/collections/media/records/{id}", fb.handleDelete("media1"))
	mux.HandleFunc("GET /api/collections/categories/records", func(w http.ResponseWriter, _ *http.Request) {
		writeRaw(w, http.StatusOK, `{"page":1,"perPage":30,"totalPages":1,"totalItems":1,"items":[`+categoryRecordJSON+`]}`)
	})
	mux.HandleFunc("GET /api/collections/categories/records/{id}", fb.handleGet("cat1", categoryRecordJSON))
	mux.HandleFunc("POST /api/collections/categories/records", fb.handleWrite(categoryRecordJSON))
	mux.HandleFunc("PATCH /api/collections/categories/records/{id}", fb.handleWrite(categoryRecordJSON))
	mux.HandleFunc("DELETE /api/collections/categories/records/{id}", fb.handleDelete("cat1"))

	fb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		fb.calls = append(fb.calls, backendCall{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.Query(),
			Authorization: r.Header.Get("Authorization"),
		})
		fb.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) handleAuth(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Identity string `json:"identity"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeRaw(w, http.StatusBadRequest, `{"code":400,"message":"Invalid body.","data":{}}`)
		return
	}
	if body.Identity != testIdentity || body.Password != testPassword {
		writeRaw(w, http.StatusBadRequest, `{"code":400,"message":"Failed to authenticate.","data":{}}`)
		return
	}
	writeRaw(w, http.StatusOK, `{
		"token": "`+testCredential+`",
		"record": {
			"id": "`+testUserID+`",
			"email": "`+testIdentity+`",
			"emailVisibility": false,
			"verified": true,
			"created": "2025-01-01 00:00:00.000Z",
			"updated": "2025-01-01 00:00:00.000Z",
			"collectionId": "pbc_superusers",
			"collectionName": "_superusers"
		}
	}`)
}

func (fb *fakeBackend) handleGet(knownID, record string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != knownID {
			writeRaw(w, http.StatusNotFound, notFoundJSON)
			return
		}
		writeRaw(w, http.StatusOK, record)
	}
}

func (fb *fakeBackend) handleWrite(record string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeRaw(w, http.StatusBadRequest, `{"code":400,"message":"Expected multipart body.","data":{}}`)
			return
		}
		files := map[string]string{}
		for field, headers := range r.MultipartForm.File {
			files[field] = headers[0].Filename
		}
		fb.mu.Lock()
		fb.lastValues = url.Values(r.MultipartForm.Value)
		fb.lastFiles = files
		fb.mu.Unlock()

		writeRaw(w, http.StatusOK, record)
	}
}

func (fb *fakeBackend) handleDelete(knownID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != knownID {
			writeRaw(w, http.StatusNotFound, notFoundJSON)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (fb *fakeBackend) Calls() []backendCall {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]backendCall(nil), fb.calls...)
}

func (fb *fakeBackend) LastForm() (url.Values, map[string]string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.lastValues, fb.lastFiles
}

func writeRaw(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e *events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Events() []*events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*events.Event(nil), p.events...)
}

type testEnvConfig struct {
	rateLimited bool
	omdb        MovieLookup
	streamHosts []string
}

type testEnvOption func(*testEnvConfig)

// withRateLimits keeps the limiters on; most tests run without them.
func withRateLimits() testEnvOption {
	return func(c *testEnvConfig) { c.rateLimited = true }
}

func withOMDB(m MovieLookup) testEnvOption {
	return func(c *testEnvConfig) { c.omdb = m }
}

func withStreamHosts(hosts ...string) testEnvOption {
	return func(c *testEnvConfig) { c.streamHosts = hosts }
}

// testEnv is a full router in front of a fake backend.
type testEnv struct {
	backend   *fakeBackend
	tokens    *auth.TokenService
	cookies   *auth.SessionCookies
	publisher *recordingPublisher
	handler   http.Handler
}

func newTestEnv(t *testing.T, opts ...testEnvOption) *testEnv {
	t.Helper()
	cfg := testEnvConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	fb := newFakeBackend(t)
	tokens, err := auth.NewTokenService(testJWTSecret)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	cookies := auth.NewSessionCookies(auth.CookieConfig{})
	pub := &recordingPublisher{}

	h := NewHandler(HandlerConfig{
		Tokens:  tokens,
		Cookies: cookies,
		Backend: backend.NewClient(backend.Config{BaseURL: fb.server.URL, Timeout: 5 * time.Second}),
		OMDB:    cfg.omdb,
		Events:  pub,
		Version: "test",
		Stream:  StreamConfig{AllowedHosts: cfg.streamHosts},
	})

	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = !cfg.rateLimited
	router := NewRouter(h, NewSessionGate(tokens, cookies, pub), NewChiMiddleware(mwCfg))

	return &testEnv{
		backend:   fb,
		tokens:    tokens,
		cookies:   cookies,
		publisher: pub,
		handler:   router.SetupChi(),
	}
}

func (e *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// sessionCookie issues a valid token for the test operator.
func (e *testEnv) sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()
	token, err := e.tokens.Issue(testUserID, testIdentity, true, testCredential)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return &http.Cookie{Name: auth.TokenCookieName, Value: token}
}

// expiredSessionCookie is signed with the right secret but expired an hour ago.
func expiredSessionCookie(t *testing.T) *http.Cookie {
	t.Helper()
	past, err := auth.NewTokenService(testJWTSecret, auth.WithClock(func() time.Time {
		return time.Now().Add(-auth.SessionLifetime - time.Hour)
	}))
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	token, err := past.Issue(testUserID, testIdentity, true, testCredential)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return &http.Cookie{Name: auth.TokenCookieName, Value: token}
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// formFile is one file part of a multipart test body.
type formFile struct {
	field, filename, contentType, content string
}

func multipartRequest(t *testing.T, method, target string, fields [][2]string, files ...formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		_, _ = io.WriteString(part, f.content)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// decodeEnvelope decodes an APIResponse whose data is decoded into data.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) APIResponse {
	t.Helper()
	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *APIError       `json:"error"`
		Meta    *APIMeta        `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	if data != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return APIResponse{Success: raw.Success, Error: raw.Error, Meta: raw.Meta}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code, message string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec, nil)
	if resp.Success || resp.Error == nil {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if resp.Error.Code != code {
		t.Errorf("error code = %q, want %q", resp.Error.Code, code)
	}
	if message != "" && resp.Error.Message != message {
		t.Errorf("error message = %q, want %q", resp.Error.Message, message)
	}
}

// clearedCookies returns the names of cookies expired by the response.
func clearedCookies(rec *httptest.ResponseRecorder) map[string]bool {
	out := map[string]bool{}
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			out[c.Name] = true
		}
	}
	return out
}
