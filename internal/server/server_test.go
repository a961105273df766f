package server

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/notekeeper/internal/server/middleware"
	"github.com/agentstation/notekeeper/internal/server/response"
	"github.com/agentstation/notekeeper/internal/store"
	"github.com/agentstation/notekeeper/pkg/logging"
	"github.com/agentstation/notekeeper/pkg/notes"
)

// newTestServer serves cfg over a notes file in a fresh temp directory and
// returns the server with that file's path.
func newTestServer(t *testing.T, cfg Config) (*httptest.Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.json")
	svc := notes.NewService(store.NewFile(path))
	srv := New(svc, logging.NewNopLogger(), cfg, "test")

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Shutdown(context.Background())
	})
	return ts, path
}

func do(t *testing.T, req *http.Request) (int, string) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func newRequest(t *testing.T, method, target string, body io.Reader) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	return req
}

func uploadRequest(t *testing.T, base, name, text string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note_name", name))
	require.NoError(t, mw.WriteField("note", text))
	require.NoError(t, mw.Close())

	req := newRequest(t, http.MethodPost, base+"/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func updateRequest(t *testing.T, base, name, text string) *http.Request {
	t.Helper()
	form := url.Values{"note": {text}}
	req := newRequest(t, http.MethodPut, base+"/notes/"+url.PathEscape(name), strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// TestServer_FullScenario walks one note through its whole lifecycle.
func TestServer_FullScenario(t *testing.T) {
	ts, path := newTestServer(t, DefaultConfig())

	status, body := do(t, uploadRequest(t, ts.URL, "a", "x"))
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, response.MsgUploaded, body)

	status, body = do(t, newRequest(t, http.MethodGet, ts.URL+"/notes/a", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "x", body)

	status, body = do(t, updateRequest(t, ts.URL, "a", "y"))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, response.MsgUpdated, body)

	status, body = do(t, newRequest(t, http.MethodGet, ts.URL+"/notes/a", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "y", body)

	status, body = do(t, newRequest(t, http.MethodDelete, ts.URL+"/notes/a", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, response.MsgDeleted, body)

	status, body = do(t, newRequest(t, http.MethodGet, ts.URL+"/notes/a", nil))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, response.MsgNotFound, body)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestServer_Routes(t *testing.T) {
	ts, _ := newTestServer(t, DefaultConfig())

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantAllow  string
	}{
		{name: "index", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "list", method: http.MethodGet, path: "/notes", wantStatus: http.StatusOK},
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "ready", method: http.MethodGet, path: "/ready", wantStatus: http.StatusOK},
		{name: "favicon", method: http.MethodGet, path: "/favicon.ico", wantStatus: http.StatusNoContent},
		{name: "unknown path", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
		{name: "nested note path", method: http.MethodGet, path: "/notes/a/b", wantStatus: http.StatusNotFound},
		{name: "empty note name", method: http.MethodGet, path: "/notes/", wantStatus: http.StatusNotFound},
		{name: "post list", method: http.MethodPost, path: "/notes", wantStatus: http.StatusMethodNotAllowed, wantAllow: "GET"},
		{name: "get upload", method: http.MethodGet, path: "/upload", wantStatus: http.StatusMethodNotAllowed, wantAllow: "POST"},
		{name: "post note", method: http.MethodPost, path: "/notes/a", wantStatus: http.StatusMethodNotAllowed, wantAllow: "GET, PUT, DELETE"},
		{name: "delete index", method: http.MethodDelete, path: "/", wantStatus: http.StatusMethodNotAllowed, wantAllow: "GET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.DefaultClient.Do(newRequest(t, tt.method, ts.URL+tt.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantAllow != "" {
				assert.Equal(t, tt.wantAllow, resp.Header.Get("Allow"))
			}
			assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
		})
	}
}

func TestServer_EncodedNoteName(t *testing.T) {
	ts, _ := newTestServer(t, DefaultConfig())

	status, _ := do(t, uploadRequest(t, ts.URL, "a/b c", "x"))
	require.Equal(t, http.StatusCreated, status)

	status, body := do(t, newRequest(t, http.MethodGet, ts.URL+"/notes/"+url.PathEscape("a/b c"), nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "x", body)
}

func TestServer_ListOrder(t *testing.T) {
	ts, _ := newTestServer(t, DefaultConfig())

	for _, name := range []string{"c", "a", "b"} {
		status, _ := do(t, uploadRequest(t, ts.URL, name, "text-"+name))
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := do(t, newRequest(t, http.MethodGet, ts.URL+"/notes", nil))
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[
		{"note_name":"c","note":"text-c"},
		{"note_name":"a","note":"text-a"},
		{"note_name":"b","note":"text-b"}
	]`, body)
}

// TestServer_SeparateNotesFiles verifies each server owns its notes file and
// nothing is written to the working directory.
func TestServer_SeparateNotesFiles(t *testing.T) {
	first, firstPath := newTestServer(t, DefaultConfig())
	second, secondPath := newTestServer(t, DefaultConfig())
	require.NotEqual(t, firstPath, secondPath)

	status, _ := do(t, uploadRequest(t, first.URL, "only-first", "x"))
	require.Equal(t, http.StatusCreated, status)

	status, body := do(t, newRequest(t, http.MethodGet, second.URL+"/notes", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, body)

	assert.FileExists(t, firstPath)
	assert.NoFileExists(t, secondPath)
	assert.NoFileExists(t, "notes.json")
}

func TestServer_CORS(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CORSEnabled = true
	cfg.CORSOrigins = []string{"https://notes.example.com"}
	ts, _ := newTestServer(t, cfg)

	req := newRequest(t, http.MethodGet, ts.URL+"/notes", nil)
	req.Header.Set("Origin", "https://notes.example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "https://notes.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_RateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = 1
	ts, _ := newTestServer(t, cfg)

	status, _ := do(t, newRequest(t, http.MethodGet, ts.URL+"/health", nil))
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, newRequest(t, http.MethodGet, ts.URL+"/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, status)
}

func TestConfig_Addr(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "localhost:8000", cfg.Addr())

	cfg.Host = "::1"
	cfg.Port = 9000
	assert.Equal(t, "[::1]:9000", cfg.Addr())
}

func TestServer_HTTPServer(t *testing.T) {
	cfg := DefaultConfig()
	path := filepath.Join(t.TempDir(), "notes.json")
	srv := New(notes.NewService(store.NewFile(path)), logging.NewNopLogger(), cfg, "test")

	hs := srv.HTTPServer()
	assert.Equal(t, "localhost:8000", hs.Addr)
	assert.Equal(t, cfg.ReadTimeout, hs.ReadTimeout)
	assert.Equal(t, cfg.WriteTimeout, hs.WriteTimeout)
	assert.Equal(t, cfg.IdleTimeout, hs.IdleTimeout)
	assert.NotNil(t, hs.Handler)
	assert.False(t, srv.StartTime().IsZero())
}
