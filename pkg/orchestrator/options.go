package orchestrator

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-giftentry/pkg/remote"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects the field mapping lookup.
func WithRegistry(registry Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithRecordService injects the record-create service.
func WithRecordService(service remote.RecordCreateService) Option {
	return func(o *Orchestrator) {
		o.records = service
	}
}

// WithLogger sets the logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSanitizer replaces the default markup-stripping sanitizer. Pass nil to
// keep string values untouched.
func WithSanitizer(sanitizer Sanitizer) Option {
	return func(o *Orchestrator) {
		o.sanitizer = sanitizer
		o.sanitizerSet = true
	}
}

// WithEditorLock freezes the given selection editor while a save runs.
func WithEditorLock(lock Locker) Option {
	return func(o *Orchestrator) {
		o.lock = lock
	}
}
