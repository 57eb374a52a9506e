package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoSections is returned when the template has nothing to prompt for.
	ErrNoSections = errors.New("tui: template has no sections")
)
