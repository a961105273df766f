// Package response provides HTTP response helpers for the notekeeper server.
// Note endpoints answer with plain-text status lines, except the note list
// which is a bare JSON array. Operational endpoints answer with JSON.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/agentstation/notekeeper/pkg/errors"
)

// Messages written to clients.
const (
	MsgUploaded      = "Note uploaded successfully!"
	MsgUpdated       = "Note updated successfully!"
	MsgDeleted       = "Note deleted successfully!"
	MsgMissingFields = "Bad request: note name and text are required."
	MsgDuplicate     = "Bad request: a note with this name already exists."
	MsgMalformedBody = "Bad request: malformed request body."
	MsgNotFound      = "Not found: no note with the given name exists."
	MsgReadFailed    = "Server error while reading notes."
	MsgSaveFailed    = "Server error while saving notes."
	MsgInternal      = "Internal server error."
	MsgRateLimited   = "Too many requests. Please try again later."
)

// Text writes a plain-text response with the given status code.
func Text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	// Write errors are ignored as headers are already sent (best effort)
	_, _ = w.Write([]byte(body))
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// Encoding errors are ignored as headers are already sent (best effort)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 plain-text response.
func OK(w http.ResponseWriter, body string) {
	Text(w, http.StatusOK, body)
}

// Created writes a 201 plain-text response.
func Created(w http.ResponseWriter, body string) {
	Text(w, http.StatusCreated, body)
}

// BadRequest writes a 400 plain-text response.
func BadRequest(w http.ResponseWriter, body string) {
	Text(w, http.StatusBadRequest, body)
}

// NotFound writes a 404 plain-text response.
func NotFound(w http.ResponseWriter, body string) {
	Text(w, http.StatusNotFound, body)
}

// MethodNotAllowed writes a 405 response listing the allowed methods.
func MethodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	Text(w, http.StatusMethodNotAllowed, "Method not allowed.")
}

// ServiceUnavailable writes a 503 JSON response.
func ServiceUnavailable(w http.ResponseWriter, reason string) {
	JSON(w, http.StatusServiceUnavailable, map[string]string{
		"status": "unavailable",
		"reason": reason,
	})
}

// InternalError writes a 500 plain-text response. Details stay server-side.
func InternalError(w http.ResponseWriter, body string) {
	if body == "" {
		body = MsgInternal
	}
	Text(w, http.StatusInternalServerError, body)
}

// ErrorFromType maps typed errors to the matching status code and message.
func ErrorFromType(w http.ResponseWriter, err error) {
	var vErr *errors.ValidationError
	switch {
	case errors.As(err, &vErr) && vErr.Field == "body":
		BadRequest(w, MsgMalformedBody)
	case errors.IsAlreadyExists(err):
		BadRequest(w, MsgDuplicate)
	case errors.IsValidationError(err):
		BadRequest(w, MsgMissingFields)
	case errors.IsNotFound(err):
		NotFound(w, MsgNotFound)
	case errors.Is(err, errors.ErrStoreWrite):
		InternalError(w, MsgSaveFailed)
	case errors.Is(err, errors.ErrStoreRead), errors.Is(err, errors.ErrStoreParse):
		InternalError(w, MsgReadFailed)
	default:
		InternalError(w, MsgInternal)
	}
}
