package orchestrator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRegistryRequired is returned when no mapping registry is configured.
	ErrRegistryRequired = errors.New("orchestrator: mapping registry is required")
	// ErrRecordServiceRequired is returned by Submit without a record service.
	ErrRecordServiceRequired = errors.New("orchestrator: record service is required")
	// ErrSaveInFlight rejects a save started while another one is running.
	ErrSaveInFlight = errors.New("orchestrator: save already in progress")
)

// DuplicateTargetError reports form keys whose mappings write the same Data
// Import field.
type DuplicateTargetError struct {
	Field string
	Keys  []string
}

func (e *DuplicateTargetError) Error() string {
	return fmt.Sprintf("orchestrator: keys %s all map to %q", strings.Join(e.Keys, ", "), e.Field)
}
