// Package giftentry exposes the entry points most callers need: open a
// template source, wire a form session, and load the field catalog.
package giftentry

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-giftentry/internal/source/loader"
	"github.com/goliatone/go-giftentry/pkg/catalog"
	"github.com/goliatone/go-giftentry/pkg/form"
	"github.com/goliatone/go-giftentry/pkg/mapping"
	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/orchestrator"
	"github.com/goliatone/go-giftentry/pkg/remote"
	"github.com/goliatone/go-giftentry/pkg/render"
	"github.com/goliatone/go-giftentry/pkg/renderers/html"
	"github.com/goliatone/go-giftentry/pkg/source"
	"github.com/goliatone/go-giftentry/pkg/templates"
)

// RenderOptions aliases render.RenderOptions for callers that only import the
// root package.
type RenderOptions = render.RenderOptions

// RecordPage aliases form.RecordPage.
type RecordPage = form.RecordPage

// ErrNoTemplateLocation is returned by OpenTemplates for an empty location.
var ErrNoTemplateLocation = errors.New("giftentry: template location is required")

// NewLoader constructs a source loader while keeping the concrete type
// internal.
func NewLoader(options ...source.LoaderOption) source.Loader {
	return internalLoader.New(source.NewLoaderOptions(options...))
}

// OpenTemplates returns a template service for location. URLs are served over
// HTTP; anything else is read as a directory of YAML or JSON wrappers.
func OpenTemplates(location string, options ...source.LoaderOption) (remote.TemplateService, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, ErrNoTemplateLocation
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		service, err := templates.NewHTTPService(location, options...)
		if err != nil {
			return nil, err
		}
		return service, nil
	}
	return OpenTemplatesFS(os.DirFS(location))
}

// OpenTemplatesFS returns a template store backed by files.
func OpenTemplatesFS(files fs.FS) (remote.TemplateService, error) {
	store, err := templates.LoadFS(files)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadCatalog reads the OpenAPI field catalog behind raw, a path or URL. URLs
// use the default HTTP client unless loaderOptions inject one.
func LoadCatalog(ctx context.Context, raw string, loaderOptions []source.LoaderOption, options ...catalog.Option) (*catalog.Catalog, error) {
	src, err := source.Parse(raw)
	if err != nil {
		return nil, err
	}
	cfg := source.NewLoaderOptions(loaderOptions...)
	if src.Kind() == source.KindURL && cfg.HTTPClient == nil {
		cfg.AllowHTTPFallback = true
	}
	return catalog.Load(ctx, internalLoader.New(cfg), src, options...)
}

// SessionConfig groups the collaborators NewSession wires together.
type SessionConfig struct {
	Templates    remote.TemplateService
	TemplateName string
	Records      remote.RecordCreateService

	// Describe, when set, resolves picklist elements against DescribeObject.
	Describe       remote.DescribeService
	DescribeObject string
	RecordTypeID   string

	// EditorLock is held for the duration of every save.
	EditorLock orchestrator.Locker

	Logger *zap.Logger
}

// NewSession builds a mapping registry, an orchestrator, and the form session
// over them. Call Load on the result before rendering.
func NewSession(cfg SessionConfig) *form.Session {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := mapping.New(
		mapping.WithTemplateService(cfg.Templates),
		mapping.WithTemplateName(cfg.TemplateName),
		mapping.WithLogger(logger.Named("mapping")),
	)

	orchOptions := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithRecordService(cfg.Records),
		orchestrator.WithLogger(logger.Named("orchestrator")),
	}
	if cfg.EditorLock != nil {
		orchOptions = append(orchOptions, orchestrator.WithEditorLock(cfg.EditorLock))
	}

	sessionOptions := []form.Option{form.WithLogger(logger.Named("form"))}
	if cfg.Describe != nil {
		sessionOptions = append(sessionOptions, form.WithPicklists(cfg.Describe, cfg.DescribeObject, cfg.RecordTypeID))
	}
	return form.NewSession(registry, orchestrator.New(orchOptions...), sessionOptions...)
}

// NewRenderRegistry returns a render registry with the HTML renderer
// registered along with any extra renderers.
func NewRenderRegistry(extra ...render.Renderer) (*render.Registry, error) {
	registry := render.NewRegistry()
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}
	for _, renderer := range extra {
		if err := registry.Register(renderer); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// SourceMappings maps every element of template to the Data Import field it
// writes to, for RenderOptions.Mappings.
func SourceMappings(template model.FormTemplate, lookup orchestrator.Registry) map[string]string {
	out := make(map[string]string)
	for _, element := range template.Elements() {
		fieldMapping, err := lookup.Lookup(element.DevName)
		if err != nil {
			continue
		}
		out[element.DevName] = fieldMapping.SourceAPIName
	}
	return out
}
