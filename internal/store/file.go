// Package store persists the note collection to a single JSON document.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentstation/notekeeper/pkg/constants"
	"github.com/agentstation/notekeeper/pkg/errors"
	"github.com/agentstation/notekeeper/pkg/logging"
	"github.com/agentstation/notekeeper/pkg/notes"
)

// tempFilePrefix names the scratch file written next to the document
// before it is renamed into place.
const tempFilePrefix = ".notekeeper-tmp-"

// File is a notes.Store backed by one JSON file holding an array of
// {"note_name", "note"} objects. The file is re-read on every Load and
// rewritten in full on every Save.
type File struct {
	path string
}

var _ notes.Store = (*File)(nil)

// NewFile returns a File store for path. Nothing is touched on disk until
// the first Save.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Load reads and parses the backing file. A missing file is an empty
// collection, not an error.
func (f *File) Load(ctx context.Context) (notes.Notes, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			logging.FromContext(ctx).Debug().Str("path", f.path).Msg("Notes file absent, starting empty")
			return notes.Notes{}, nil
		}
		return nil, errors.WrapIO("read", f.path, err)
	}

	var ns notes.Notes
	if err := json.Unmarshal(data, &ns); err != nil {
		return nil, errors.WrapParse("json", f.path, err)
	}
	if ns == nil {
		ns = notes.Notes{}
	}
	return ns, nil
}

// Save writes the full collection as indented JSON, replacing the
// backing file.
func (f *File) Save(ctx context.Context, ns notes.Notes) error {
	if ns == nil {
		ns = notes.Notes{}
	}

	data, err := encode(ns)
	if err != nil {
		return errors.WrapIO("write", f.path, err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("write", f.path, err)
		}
	}

	if err := writeFileAtomic(f.path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", f.path, err)
	}

	logging.FromContext(ctx).Debug().
		Str("path", f.path).
		Int("notes", len(ns)).
		Int("bytes", len(data)).
		Msg("Notes saved")
	return nil
}

// encode renders notes with two-space indentation. HTML characters are
// kept literal so note text round-trips byte for byte.
func encode(ns notes.Notes) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ns); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
