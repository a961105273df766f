package handlers

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/agentstation/notekeeper/pkg/errors"
)

// noteFields holds the note_name and note members of a request body.
// Absent members are empty strings.
type noteFields struct {
	Name string
	Text string
}

// jsonNoteBody is the JSON form of a request body.
type jsonNoteBody struct {
	Name string `json:"note_name"`
	Text string `json:"note"`
}

// readNoteFields extracts note fields from a multipart, url-encoded or JSON
// body. Other or unparseable content types carry no fields.
func readNoteFields(w http.ResponseWriter, r *http.Request, maxSize int64) (noteFields, error) {
	if r.Body == nil {
		return noteFields{}, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return noteFields{}, nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Unparseable types carry no fields, like unknown ones.
		return noteFields{}, nil
	}

	switch mediaType {
	case "application/json":
		var body jsonNoteBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			if err == io.EOF {
				return noteFields{}, nil
			}
			return noteFields{}, errors.NewValidationError("body", nil, err.Error())
		}
		return noteFields(body), nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxSize); err != nil {
			return noteFields{}, errors.NewValidationError("body", nil, err.Error())
		}
		if r.MultipartForm != nil {
			defer func() { _ = r.MultipartForm.RemoveAll() }()
		}

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return noteFields{}, errors.NewValidationError("body", nil, err.Error())
		}

	default:
		return noteFields{}, nil
	}

	return noteFields{
		Name: r.PostForm.Get("note_name"),
		Text: r.PostForm.Get("note"),
	}, nil
}
