package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
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

	"github.com/agentstation/notekeeper/internal/server/response"
	"github.com/agentstation/notekeeper/internal/store"
	"github.com/agentstation/notekeeper/pkg/errors"
	"github.com/agentstation/notekeeper/pkg/logging"
	"github.com/agentstation/notekeeper/pkg/notes"
)

func newTestHandlers(t *testing.T) (*Handlers, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.json")
	svc := notes.NewService(store.NewFile(path))
	return New(svc, logging.NewNopLogger(), WithVersion("test")), path
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func formRequest(method, target string, fields url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(fields.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandleUpload(t *testing.T) {
	tests := []struct {
		name       string
		request    func(t *testing.T) *http.Request
		wantStatus int
		wantBody   string
	}{
		{
			name: "multipart",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, http.MethodPost, "/upload", map[string]string{"note_name": "a", "note": "hello"})
			},
			wantStatus: http.StatusCreated,
			wantBody:   response.MsgUploaded,
		},
		{
			name: "url encoded",
			request: func(_ *testing.T) *http.Request {
				return formRequest(http.MethodPost, "/upload", url.Values{"note_name": {"a"}, "note": {"hello"}})
			},
			wantStatus: http.StatusCreated,
			wantBody:   response.MsgUploaded,
		},
		{
			name: "json",
			request: func(_ *testing.T) *http.Request {
				return jsonRequest(http.MethodPost, "/upload", `{"note_name":"a","note":"hello"}`)
			},
			wantStatus: http.StatusCreated,
			wantBody:   response.MsgUploaded,
		},
		{
			name: "missing text",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, http.MethodPost, "/upload", map[string]string{"note_name": "a"})
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   response.MsgMissingFields,
		},
		{
			name: "missing name",
			request: func(_ *testing.T) *http.Request {
				return jsonRequest(http.MethodPost, "/upload", `{"note":"hello"}`)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   response.MsgMissingFields,
		},
		{
			name: "no body",
			request: func(_ *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/upload", nil)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   response.MsgMissingFields,
		},
		{
			name: "malformed json",
			request: func(_ *testing.T) *http.Request {
				return jsonRequest(http.MethodPost, "/upload", `{"note_name":`)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   response.MsgMalformedBody,
		},
		{
			name: "json with wrong types",
			request: func(_ *testing.T) *http.Request {
				return jsonRequest(http.MethodPost, "/upload", `{"note_name":1,"note":true}`)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   response.MsgMalformedBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandlers(t)
			w := httptest.NewRecorder()

			h.HandleUpload(w, tt.request(t))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestHandleUpload_Duplicate(t *testing.T) {
	h, _ := newTestHandlers(t)

	w := httptest.NewRecorder()
	h.HandleUpload(w, multipartRequest(t, http.MethodPost, "/upload", map[string]string{"note_name": "a", "note": "x"}))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	h.HandleUpload(w, multipartRequest(t, http.MethodPost, "/upload", map[string]string{"note_name": "a", "note": "y"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.MsgDuplicate, w.Body.String())

	w = httptest.NewRecorder()
	h.HandleGetNote(w, httptest.NewRequest(http.MethodGet, "/notes/a", nil), "a")
	assert.Equal(t, "x", w.Body.String())
}

func TestHandleListNotes(t *testing.T) {
	h, path := newTestHandlers(t)

	w := httptest.NewRecorder()
	h.HandleListNotes(w, httptest.NewRequest(http.MethodGet, "/notes", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "listing must not create the notes file")

	for _, name := range []string{"b", "a"} {
		w = httptest.NewRecorder()
		h.HandleUpload(w, jsonRequest(http.MethodPost, "/upload", `{"note_name":"`+name+`","note":"text-`+name+`"}`))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = httptest.NewRecorder()
	h.HandleListNotes(w, httptest.NewRequest(http.MethodGet, "/notes", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `[{"note_name":"b","note":"text-b"},{"note_name":"a","note":"text-a"}]`, w.Body.String())
}

func TestHandleListNotes_CorruptFile(t *testing.T) {
	h, path := newTestHandlers(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	w := httptest.NewRecorder()
	h.HandleListNotes(w, httptest.NewRequest(http.MethodGet, "/notes", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, response.MsgReadFailed, w.Body.String())
}

func TestHandleGetNote_NotFound(t *testing.T) {
	h, _ := newTestHandlers(t)

	w := httptest.NewRecorder()
	h.HandleGetNote(w, httptest.NewRequest(http.MethodGet, "/notes/ghost", nil), "ghost")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.MsgNotFound, w.Body.String())
}

func TestHandleUpdateNote(t *testing.T) {
	h, _ := newTestHandlers(t)

	w := httptest.NewRecorder()
	h.HandleUpload(w, formRequest(http.MethodPost, "/upload", url.Values{"note_name": {"a"}, "note": {"one"}}))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	h.HandleUpdateNote(w, formRequest(http.MethodPut, "/notes/a", url.Values{"note": {"two"}}), "a")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.MsgUpdated, w.Body.String())

	w = httptest.NewRecorder()
	h.HandleGetNote(w, httptest.NewRequest(http.MethodGet, "/notes/a", nil), "a")
	assert.Equal(t, "two", w.Body.String())

	// A missing note field clears the text.
	w = httptest.NewRecorder()
	h.HandleUpdateNote(w, httptest.NewRequest(http.MethodPut, "/notes/a", nil), "a")
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.HandleGetNote(w, httptest.NewRequest(http.MethodGet, "/notes/a", nil), "a")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHandleUpdateNote_UnparseableContentType(t *testing.T) {
	h, _ := newTestHandlers(t)

	w := httptest.NewRecorder()
	h.HandleUpload(w, formRequest(http.MethodPost, "/upload", url.Values{"note_name": {"a"}, "note": {"one"}}))
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodPut, "/notes/a", strings.NewReader("note=two"))
	req.Header.Set("Content-Type", "text/plain; charset")
	w = httptest.NewRecorder()
	h.HandleUpdateNote(w, req, "a")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.MsgUpdated, w.Body.String())

	w = httptest.NewRecorder()
	h.HandleGetNote(w, httptest.NewRequest(http.MethodGet, "/notes/a", nil), "a")
	assert.Empty(t, w.Body.String(), "a body without readable fields clears the note")

	req = httptest.NewRequest(http.MethodPut, "/notes/ghost", strings.NewReader("x"))
	req.Header.Set("Content-Type", ";;")
	w = httptest.NewRecorder()
	h.HandleUpdateNote(w, req, "ghost")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleUpdateNote_NotFound(t *testing.T) {
	h, path := newTestHandlers(t)

	w := httptest.NewRecorder()
	h.HandleUpdateNote(w, jsonRequest(http.MethodPut, "/notes/ghost", `{"note":"x"}`), "ghost")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.MsgNotFound, w.Body.String())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestHandleDeleteNote(t *testing.T) {
	h, _ := newTestHandlers(t)

	for _, name := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		h.HandleUpload(w, jsonRequest(http.MethodPost, "/upload", `{"note_name":"`+name+`","note":"x"}`))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := httptest.NewRecorder()
	h.HandleDeleteNote(w, httptest.NewRequest(http.MethodDelete, "/notes/a", nil), "a")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.MsgDeleted, w.Body.String())

	w = httptest.NewRecorder()
	h.HandleDeleteNote(w, httptest.NewRequest(http.MethodDelete, "/notes/a", nil), "a")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.HandleListNotes(w, httptest.NewRequest(http.MethodGet, "/notes", nil))
	assert.JSONEq(t, `[{"note_name":"b","note":"x"}]`, w.Body.String())
}

// readOnlyStore loads from a file but refuses every save.
type readOnlyStore struct {
	*store.File
}

func (s readOnlyStore) Save(_ context.Context, _ notes.Notes) error {
	return errors.WrapIO("write", s.Path(), fs.ErrPermission)
}

func TestHandleDeleteNote_SaveFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"note_name":"a","note":"x"}]`), 0o644))
	h := New(notes.NewService(readOnlyStore{store.NewFile(path)}), logging.NewNopLogger())

	w := httptest.NewRecorder()
	h.HandleDeleteNote(w, httptest.NewRequest(http.MethodDelete, "/notes/a", nil), "a")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, response.MsgSaveFailed, w.Body.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"note_name":"a"`)
}

func TestHandleIndex(t *testing.T) {
	h, _ := newTestHandlers(t)

	w := httptest.NewRecorder()
	h.HandleIndex(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `action="/upload"`)
}

func TestHandleHealth(t *testing.T) {
	h, _ := newTestHandlers(t)

	w := httptest.NewRecorder()
	h.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "notekeeper", body["service"])
	assert.Equal(t, "test", body["version"])
	assert.NotEmpty(t, body["uptime"])
	assert.NotEmpty(t, body["started_at"])
}

func TestHandleReady(t *testing.T) {
	h, path := newTestHandlers(t)

	w := httptest.NewRecorder()
	h.HandleReady(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready","notes":0}`, w.Body.String())

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	w = httptest.NewRecorder()
	h.HandleReady(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandlers_LogsFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	tl := logging.NewTestLogger(t)
	h := New(notes.NewService(store.NewFile(path)), tl.Logger)

	w := httptest.NewRecorder()
	h.HandleGetNote(w, httptest.NewRequest(http.MethodGet, "/notes/a", nil), "a")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	tl.AssertContains(t, `"level":"error"`)
	tl.AssertContains(t, `"operation":"get"`)
	tl.AssertContains(t, `"note_name":"a"`)
	tl.AssertContains(t, "Notes file unavailable")
}

func TestHandlers_LogsCanceledRequest(t *testing.T) {
	tl := logging.NewTestLogger(t)
	h := New(notes.NewService(store.NewFile(filepath.Join(t.TempDir(), "notes.json"))), tl.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodDelete, "/notes/a", nil).WithContext(ctx)

	w := httptest.NewRecorder()
	h.HandleDeleteNote(w, req, "a")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	tl.AssertContains(t, `"level":"warn"`)
	tl.AssertContains(t, "Note request canceled")
	tl.AssertNotContains(t, `"level":"error"`)
}
