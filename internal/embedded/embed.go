// Package embedded holds static assets compiled into the binary.
package embedded

import (
	"embed"
)

// FS embeds the static web assets served by the HTTP server.
//
//go:embed static/*
var FS embed.FS

// UploadFormPath is the location of the note upload form inside FS.
const UploadFormPath = "static/UploadForm.html"

// UploadForm returns the HTML document served at the site root.
func UploadForm() ([]byte, error) {
	return FS.ReadFile(UploadFormPath)
}
