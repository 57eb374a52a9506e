package remote

import (
	"errors"
	"fmt"
)

// ErrNotReady is returned by components asked to work before their remote
// data finished loading.
var ErrNotReady = errors.New("remote: data not loaded")

// FetchError reports a failed describe, template or catalog retrieval. The
// failure is terminal for the current render pass.
type FetchError struct {
	Op     string
	Target string
	Err    error
}

func (e *FetchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Target == "" {
		return fmt.Sprintf("remote: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("remote: %s %q: %v", e.Op, e.Target, e.Err)
}

func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SaveError reports a failed record-create call. Callers may retry by
// submitting again.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("remote: save record: %v", e.Err)
}

func (e *SaveError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewFetchError wraps err unless it already is a FetchError.
func NewFetchError(op, target string, err error) error {
	if err == nil {
		return nil
	}
	var existing *FetchError
	if errors.As(err, &existing) {
		return err
	}
	return &FetchError{Op: op, Target: target, Err: err}
}
