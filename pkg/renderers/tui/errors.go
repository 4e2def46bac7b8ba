package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoDriver is returned when a session runs without a prompt driver.
	ErrNoDriver = errors.New("tui: prompt driver is nil")
	// ErrTooManyPrompts stops a session that exceeds the configured prompt
	// budget, which only happens with scripted drivers.
	ErrTooManyPrompts = errors.New("tui: prompt limit reached")
)
