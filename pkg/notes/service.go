package notes

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/notekeeper/pkg/errors"
	"github.com/agentstation/notekeeper/pkg/logging"
)

// Store loads and saves the full note collection.
type Store interface {
	// Load returns every note in order. A missing backing file yields an
	// empty collection.
	Load(ctx context.Context) (Notes, error)
	// Save overwrites the backing file with notes.
	Save(ctx context.Context, notes Notes) error
}

// Service applies note operations to a Store. Each call is one
// load, transform, save cycle guarded by mu.
type Service struct {
	store Store
	mu    sync.Mutex
}

// NewService creates a Service backed by store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns every note in insertion order.
func (s *Service) List(ctx context.Context) (Notes, error) {
	unlock, err := s.lock(ctx, "list")
	if err != nil {
		return nil, err
	}
	defer unlock()

	notes, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = Notes{}
	}
	return notes, nil
}

// Get returns the text of the note named name.
func (s *Service) Get(ctx context.Context, name string) (string, error) {
	unlock, err := s.lock(ctx, "get")
	if err != nil {
		return "", err
	}
	defer unlock()

	notes, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}

	note, ok := notes.Find(name)
	if !ok {
		return "", errors.NewNotFoundError("note", name)
	}
	return note.Text, nil
}

// Create appends a new note. Both name and text must be non-empty and the
// name must not already be taken.
func (s *Service) Create(ctx context.Context, name, text string) error {
	if name == "" {
		return errors.NewValidationError("note_name", name, "is required")
	}
	if text == "" {
		return errors.NewValidationError("note", text, "is required")
	}

	unlock, err := s.lock(ctx, "create")
	if err != nil {
		return err
	}
	defer unlock()

	notes, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if notes.Index(name) >= 0 {
		return errors.NewDuplicateError("note_name", name)
	}

	notes = append(notes, Note{Name: name, Text: text})
	if err := s.store.Save(ctx, notes); err != nil {
		return err
	}

	logger(ctx).Debug().Str("note_name", name).Int("notes", len(notes)).Msg("Note created")
	return nil
}

// Update replaces the text of the note named name in place. An empty text
// clears the note.
func (s *Service) Update(ctx context.Context, name, text string) error {
	unlock, err := s.lock(ctx, "update")
	if err != nil {
		return err
	}
	defer unlock()

	notes, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	i := notes.Index(name)
	if i < 0 {
		return errors.NewNotFoundError("note", name)
	}
	notes[i].Text = text

	if err := s.store.Save(ctx, notes); err != nil {
		return err
	}

	logger(ctx).Debug().Str("note_name", name).Int("position", i).Msg("Note updated")
	return nil
}

// Delete removes every note named name. It fails with a not found error
// when nothing was removed.
func (s *Service) Delete(ctx context.Context, name string) error {
	unlock, err := s.lock(ctx, "delete")
	if err != nil {
		return err
	}
	defer unlock()

	notes, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	remaining := notes.Without(name)
	if len(remaining) == len(notes) {
		return errors.NewNotFoundError("note", name)
	}

	if err := s.store.Save(ctx, remaining); err != nil {
		return err
	}

	logger(ctx).Debug().Str("note_name", name).Int("notes", len(remaining)).Msg("Note deleted")
	return nil
}

// lock acquires the service mutex unless ctx is already done.
func (s *Service) lock(ctx context.Context, operation string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapCanceled(operation+" notes", err)
	}
	s.mu.Lock()
	return s.mu.Unlock, nil
}

func logger(ctx context.Context) *zerolog.Logger {
	return logging.FromContext(ctx)
}
