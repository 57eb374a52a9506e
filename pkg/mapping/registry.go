package mapping

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/remote"
	"github.com/goliatone/go-giftentry/pkg/widgets"
)

// Registry resolves form field keys to field mappings. Entries are immutable
// once Load returns; a later Load replaces the whole set.
type Registry struct {
	service      remote.TemplateService
	templateName string
	widgets      *widgets.Registry
	decorators   []model.Decorator
	logger       *zap.Logger

	mu       sync.RWMutex
	ready    bool
	template model.FormTemplate
	fields   map[string]model.FieldMapping
	objects  map[string]model.ObjectMapping
}

// New constructs a Registry. Call Load before looking up keys.
func New(options ...Option) *Registry {
	r := &Registry{
		templateName: DefaultTemplateName,
		widgets:      widgets.NewRegistry(),
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// NewFromWrapper builds a ready registry from an already retrieved wrapper.
func NewFromWrapper(wrapper model.RenderWrapper, options ...Option) (*Registry, error) {
	r := New(options...)
	if err := r.install(wrapper); err != nil {
		return nil, err
	}
	return r, nil
}

// Load retrieves the configured template and installs its mappings. On
// failure the registry is left not ready and the error is a
// *remote.FetchError.
func (r *Registry) Load(ctx context.Context) error {
	if r.service == nil {
		return remote.NewFetchError("retrieve template", r.templateName, ErrTemplateServiceRequired)
	}

	wrapper, err := r.service.RetrieveFormTemplate(ctx, r.templateName)
	if err != nil {
		r.reset()
		r.logger.Error("template retrieval failed",
			zap.String("template", r.templateName),
			zap.Error(err),
		)
		return remote.NewFetchError("retrieve template", r.templateName, err)
	}

	if err := r.install(wrapper); err != nil {
		r.reset()
		return remote.NewFetchError("retrieve template", r.templateName, err)
	}

	r.logger.Debug("field mappings loaded",
		zap.String("template", r.templateName),
		zap.Int("fields", len(wrapper.MappingSet.FieldMappings)),
		zap.Int("objects", len(wrapper.MappingSet.ObjectMappings)),
	)
	return nil
}

func (r *Registry) install(wrapper model.RenderWrapper) error {
	fields := make(map[string]model.FieldMapping, len(wrapper.MappingSet.FieldMappings))
	for key, mapping := range wrapper.MappingSet.FieldMappings {
		if mapping.DevName == "" {
			mapping.DevName = key
		}
		fields[key] = mapping
	}
	objects := make(map[string]model.ObjectMapping, len(wrapper.MappingSet.ObjectMappings))
	for key, mapping := range wrapper.MappingSet.ObjectMappings {
		if mapping.DevName == "" {
			mapping.DevName = key
		}
		objects[key] = mapping
	}

	template := cloneTemplate(wrapper.FormTemplate)
	if err := r.widgets.Decorate(&template); err != nil {
		return fmt.Errorf("mapping: decorate template: %w", err)
	}
	for _, decorator := range r.decorators {
		if err := decorator.Decorate(&template); err != nil {
			return fmt.Errorf("mapping: decorate template: %w", err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields = fields
	r.objects = objects
	r.template = template
	r.ready = true
	return nil
}

func (r *Registry) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ready = false
	r.fields = nil
	r.objects = nil
	r.template = model.FormTemplate{}
}

// Ready reports whether a template has been loaded.
func (r *Registry) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ready
}

// TemplateName returns the configured template name.
func (r *Registry) TemplateName() string {
	return r.templateName
}

// Template returns a copy of the loaded, decorated template.
func (r *Registry) Template() (model.FormTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.ready {
		return model.FormTemplate{}, ErrNotLoaded
	}
	return cloneTemplate(r.template), nil
}

// Lookup returns the field mapping registered under key.
func (r *Registry) Lookup(key string) (model.FieldMapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.ready {
		return model.FieldMapping{}, ErrNotLoaded
	}
	mapping, ok := r.fields[key]
	if !ok {
		return model.FieldMapping{}, &NotFoundError{Kind: "field", Key: key}
	}
	return mapping, nil
}

// ObjectMapping returns the object mapping registered under devName.
func (r *Registry) ObjectMapping(devName string) (model.ObjectMapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.ready {
		return model.ObjectMapping{}, ErrNotLoaded
	}
	mapping, ok := r.objects[devName]
	if !ok {
		return model.ObjectMapping{}, &NotFoundError{Kind: "object", Key: devName}
	}
	return mapping, nil
}

// TargetObject resolves the object mapping a field mapping writes to.
func (r *Registry) TargetObject(key string) (model.ObjectMapping, error) {
	field, err := r.Lookup(key)
	if err != nil {
		return model.ObjectMapping{}, err
	}
	if strings.TrimSpace(field.TargetObject) == "" {
		return model.ObjectMapping{}, &NotFoundError{Kind: "object", Key: key}
	}
	return r.ObjectMapping(field.TargetObject)
}

// Keys returns every field mapping key in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.fields))
	for key := range r.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// WidgetKindFor returns the input widget kind for a data type.
func (r *Registry) WidgetKindFor(dataType model.DataType) (string, bool) {
	return r.widgets.Resolve(dataType)
}

// NumericFormatFor returns the numeric format hint for a data type.
func (r *Registry) NumericFormatFor(dataType model.DataType) (string, bool) {
	return r.widgets.NumberFormat(dataType)
}

func cloneTemplate(template model.FormTemplate) model.FormTemplate {
	out := template
	if len(template.Layout.Sections) > 0 {
		out.Layout.Sections = make([]model.Section, len(template.Layout.Sections))
		for idx, section := range template.Layout.Sections {
			out.Layout.Sections[idx] = section
			out.Layout.Sections[idx].Elements = append([]model.Element(nil), section.Elements...)
		}
	}
	out.BatchHeaderFields = append([]model.SelectedField(nil), template.BatchHeaderFields...)
	return out
}
