package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned by mutations before Initialize or Load.
	ErrNotInitialized = errors.New("editor: available fields not loaded")
	// ErrRequiredField is returned when toggling off a required key.
	ErrRequiredField = errors.New("editor: required field cannot be removed")
	// ErrLocked is returned by mutations while a save is in flight.
	ErrLocked = errors.New("editor: selection is locked")
)

// InvalidKeyError reports a key that is not part of the available catalog or
// the current selection.
type InvalidKeyError struct {
	Key string
}

func (e *InvalidKeyError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("editor: unknown field key %q", e.Key)
}
