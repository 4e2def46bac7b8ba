package editor

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Filename is the name Download writes to.
const Filename = "form-definition.json"

// ContentType reports the MIME type of the exported document.
func ContentType() string {
	return schema.ContentType
}

// Clipboard receives exported JSON text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the desktop clipboard.
type SystemClipboard struct{}

// WriteAll copies text to the system clipboard.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrNoClipboard
	}
	return clipboard.WriteAll(text)
}

// ExportJSON validates the sections and returns the canonical JSON document
// with two-space indentation.
func (e *Editor) ExportJSON() (string, error) {
	var buf bytes.Buffer
	if err := e.WriteJSON(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteJSON validates the sections and writes the canonical document to w.
func (e *Editor) WriteJSON(w io.Writer) error {
	s := e.Export()
	if err := schema.Validate(s); err != nil {
		return fmt.Errorf("editor: export: %w", err)
	}
	return schema.EncodeJSON(w, s)
}

// CopyJSON places the exported document on cb.
func (e *Editor) CopyJSON(cb Clipboard) error {
	if cb == nil {
		return ErrNoClipboard
	}
	text, err := e.ExportJSON()
	if err != nil {
		return err
	}
	if err := cb.WriteAll(text); err != nil {
		return fmt.Errorf("editor: copy to clipboard: %w", err)
	}
	e.logger.Debug().Int("bytes", len(text)).Msg("editor copied json")
	return nil
}

// Download writes the exported document to dir/form-definition.json and
// returns the written path.
func (e *Editor) Download(dir string) (string, error) {
	text, err := e.ExportJSON()
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	target := filepath.Join(dir, Filename)
	if err := os.WriteFile(target, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("editor: download: %w", err)
	}
	e.logger.Info().Str("path", target).Msg("editor wrote form definition")
	return target, nil
}
