package mapping

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned by lookups before Load succeeded.
	ErrNotLoaded = errors.New("mapping: registry not loaded")
	// ErrTemplateServiceRequired is returned by Load without a template service.
	ErrTemplateServiceRequired = errors.New("mapping: template service is required")
)

// NotFoundError reports a key with no field or object mapping.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "<nil>"
	}
	kind := e.Kind
	if kind == "" {
		kind = "field"
	}
	return fmt.Sprintf("mapping: no %s mapping for key %q", kind, e.Key)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
