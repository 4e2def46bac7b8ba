package editor

import "errors"

var (
	// ErrSectionNotFound is returned when a section id is unknown.
	ErrSectionNotFound = errors.New("editor: section not found")
	// ErrFieldNotFound is returned when a field id is unknown.
	ErrFieldNotFound = errors.New("editor: field not found")
	// ErrUnknownProperty is returned for patches naming an unsupported property.
	ErrUnknownProperty = errors.New("editor: unknown property")
	// ErrInvalidValue is returned when a patch value has the wrong shape.
	ErrInvalidValue = errors.New("editor: invalid property value")
	// ErrNoClipboard is returned when CopyJSON is called without a clipboard.
	ErrNoClipboard = errors.New("editor: clipboard unavailable")
)
