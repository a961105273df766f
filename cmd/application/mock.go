package application

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/notekeeper/internal/server"
	"github.com/agentstation/notekeeper/internal/store"
	"github.com/agentstation/notekeeper/pkg/constants"
	"github.com/agentstation/notekeeper/pkg/notes"
)

// Mock is an Application for tests. Each nil func field falls back to a
// default; the default Notes service is file-backed at NotesFile and
// created once.
type Mock struct {
	NotesFunc        func() (*notes.Service, error)
	NotesFileFunc    func() string
	ServerConfigFunc func() server.Config
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string

	once    sync.Once
	service *notes.Service
}

var _ Application = (*Mock)(nil)

func (m *Mock) Notes() (*notes.Service, error) {
	if m.NotesFunc != nil {
		return m.NotesFunc()
	}
	m.once.Do(func() {
		m.service = notes.NewService(store.NewFile(m.NotesFile()))
	})
	return m.service, nil
}

func (m *Mock) NotesFile() string {
	if m.NotesFileFunc != nil {
		return m.NotesFileFunc()
	}
	return constants.DefaultNotesFile
}

func (m *Mock) ServerConfig() server.Config {
	if m.ServerConfigFunc != nil {
		return m.ServerConfigFunc()
	}
	return server.DefaultConfig()
}

// Logger defaults to a logger that discards everything.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat defaults to "", which lets commands detect the format.
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return ""
}

func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}
