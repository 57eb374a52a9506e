package editor

import "go.uber.org/zap"

// DefaultRequiredKeys are always selected and cannot be removed.
var DefaultRequiredKeys = []string{"Name"}

// Option customises an Editor.
type Option func(*Editor)

// WithRequiredKeys replaces DefaultRequiredKeys. Declaration order decides the
// order in which missing required keys are appended.
func WithRequiredKeys(keys ...string) Option {
	return func(e *Editor) {
		e.requiredOrder = dedupe(keys)
	}
}

// WithLogger sets the logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok || key == "" {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
