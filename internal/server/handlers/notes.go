package handlers

import (
	"net/http"

	"github.com/agentstation/notekeeper/internal/embedded"
	"github.com/agentstation/notekeeper/internal/server/response"
	"github.com/agentstation/notekeeper/pkg/logging"
)

// HandleIndex handles GET /.
// @Summary Upload form
// @Description HTML form posting to /upload
// @Tags notes
// @Produce html
// @Success 200 {string} string
// @Router / [get].
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := embedded.UploadForm()
	if err != nil {
		h.fail(w, r, "index", "", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// HandleListNotes handles GET /notes.
// @Summary List notes
// @Description Every stored note in insertion order
// @Tags notes
// @Produce json
// @Success 200 {array} notes.Note
// @Failure 500 {string} string
// @Router /notes [get].
func (h *Handlers) HandleListNotes(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(h.requestContext(r))
	if err != nil {
		h.fail(w, r, "list", "", err)
		return
	}
	response.JSON(w, http.StatusOK, list)
}

// HandleGetNote handles GET /notes/{note_name}.
// @Summary Get note text
// @Tags notes
// @Produce plain
// @Param note_name path string true "Note name"
// @Success 200 {string} string
// @Failure 404 {string} string
// @Failure 500 {string} string
// @Router /notes/{note_name} [get].
func (h *Handlers) HandleGetNote(w http.ResponseWriter, r *http.Request, name string) {
	text, err := h.service.Get(h.requestContext(r), name)
	if err != nil {
		h.fail(w, r, "get", name, err)
		return
	}
	response.OK(w, text)
}

// HandleUpload handles POST /upload.
// @Summary Create note
// @Tags notes
// @Accept mpfd
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce plain
// @Param note_name formData string true "Note name"
// @Param note formData string true "Note text"
// @Success 201 {string} string
// @Failure 400 {string} string
// @Failure 500 {string} string
// @Router /upload [post].
func (h *Handlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	fields, err := readNoteFields(w, r, h.maxUploadSize)
	if err != nil {
		h.fail(w, r, "create", "", err)
		return
	}

	ctx := h.requestContext(r)
	if err := h.service.Create(ctx, fields.Name, fields.Text); err != nil {
		h.fail(w, r, "create", fields.Name, err)
		return
	}

	logging.FromContext(ctx).Info().
		Str("note_name", fields.Name).
		Msg("Note created")
	response.Created(w, response.MsgUploaded)
}

// HandleUpdateNote handles PUT /notes/{note_name}.
// A missing note field clears the note text.
// @Summary Replace note text
// @Tags notes
// @Accept mpfd
// @Accept x-www-form-urlencoded
// @Accept json
// @Produce plain
// @Param note_name path string true "Note name"
// @Param note formData string false "New note text"
// @Success 200 {string} string
// @Failure 404 {string} string
// @Failure 500 {string} string
// @Router /notes/{note_name} [put].
func (h *Handlers) HandleUpdateNote(w http.ResponseWriter, r *http.Request, name string) {
	fields, err := readNoteFields(w, r, h.maxUploadSize)
	if err != nil {
		h.fail(w, r, "update", name, err)
		return
	}

	ctx := h.requestContext(r)
	if err := h.service.Update(ctx, name, fields.Text); err != nil {
		h.fail(w, r, "update", name, err)
		return
	}

	logging.FromContext(ctx).Info().
		Str("note_name", name).
		Msg("Note updated")
	response.OK(w, response.MsgUpdated)
}

// HandleDeleteNote handles DELETE /notes/{note_name}.
// @Summary Delete note
// @Tags notes
// @Produce plain
// @Param note_name path string true "Note name"
// @Success 200 {string} string
// @Failure 404 {string} string
// @Failure 500 {string} string
// @Router /notes/{note_name} [delete].
func (h *Handlers) HandleDeleteNote(w http.ResponseWriter, r *http.Request, name string) {
	ctx := h.requestContext(r)
	if err := h.service.Delete(ctx, name); err != nil {
		h.fail(w, r, "delete", name, err)
		return
	}

	logging.FromContext(ctx).Info().
		Str("note_name", name).
		Msg("Note deleted")
	response.OK(w, response.MsgDeleted)
}
