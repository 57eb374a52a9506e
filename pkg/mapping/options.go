package mapping

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/remote"
	"github.com/goliatone/go-giftentry/pkg/widgets"
)

// DefaultTemplateName is the template loaded when none is configured.
const DefaultTemplateName = "Single Gift Entry Template"

// Option customises a Registry.
type Option func(*Registry)

// WithTemplateService sets the service used by Load.
func WithTemplateService(service remote.TemplateService) Option {
	return func(r *Registry) {
		r.service = service
	}
}

// WithTemplateName overrides DefaultTemplateName.
func WithTemplateName(name string) Option {
	return func(r *Registry) {
		if name != "" {
			r.templateName = name
		}
	}
}

// WithWidgets injects the widget registry used for input type resolution and
// template decoration.
func WithWidgets(registry *widgets.Registry) Option {
	return func(r *Registry) {
		if registry != nil {
			r.widgets = registry
		}
	}
}

// WithDecorators registers decorators applied to the template after it loads.
// The widget registry always runs first.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(r *Registry) {
		for _, decorator := range decorators {
			if decorator != nil {
				r.decorators = append(r.decorators, decorator)
			}
		}
	}
}

// WithLogger sets the logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}
