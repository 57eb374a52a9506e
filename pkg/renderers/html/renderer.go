// Package html renders a static HTML preview of a gift entry form template
// using pongo2 templates.
package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/render"
	rendertemplate "github.com/goliatone/go-giftentry/pkg/render/template"
	"github.com/goliatone/go-giftentry/pkg/widgets"
)

const formTemplateName = "form"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       *string
}

// WithTemplatesFS supplies an alternate template bundle. It must contain a
// form.tmpl template.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet replaces the inlined stylesheet. An empty string disables it.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = &css
	}
}

// Renderer produces the HTML preview.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := rendertemplate.New(
			rendertemplate.WithFS(cfg.templateFS),
			rendertemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	stylesheet := defaultStylesheet()
	if cfg.stylesheet != nil {
		stylesheet = *cfg.stylesheet
	}
	return &Renderer{templates: renderer, stylesheet: stylesheet}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType reports the output media type.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the preview markup for template.
func (r *Renderer) Render(ctx context.Context, template model.FormTemplate, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("html renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := map[string]any{
		"template":   template,
		"sections":   buildSections(template, options),
		"stylesheet": r.stylesheet,
	}
	out, err := r.templates.RenderTemplate(formTemplateName, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}
	return []byte(out), nil
}

type sectionView struct {
	ID          string
	Label       string
	DisplayType string
	DisplayMode string
	Fields      []fieldView
}

type fieldView struct {
	ID       string
	Name     string
	Label    string
	Widget   string
	Format   string
	Step     string
	Required bool
	Value    string
	Target   string
	Options  []model.PicklistOption
	Errors   []string
}

func buildSections(template model.FormTemplate, options render.RenderOptions) []sectionView {
	sections := make([]sectionView, 0, len(template.Layout.Sections))
	for sIdx, section := range template.Layout.Sections {
		id := section.ID
		if id == "" {
			id = fmt.Sprintf("section-%d", sIdx+1)
		}
		mode := section.DefaultDisplayMode
		if mode == "" {
			mode = "expanded"
		}
		view := sectionView{
			ID:          id,
			Label:       section.Label,
			DisplayType: section.DisplayType,
			DisplayMode: mode,
		}
		for _, element := range section.Elements {
			view.Fields = append(view.Fields, buildField(id, element, options))
		}
		sections = append(sections, view)
	}
	return sections
}

func buildField(sectionID string, element model.Element, options render.RenderOptions) fieldView {
	widget := element.WidgetKind
	if widget == "" {
		widget = widgets.WidgetText
	}
	label := element.Label
	if label == "" {
		label = element.DevName
	}

	field := fieldView{
		ID:       sectionID + "-" + element.DevName,
		Name:     element.DevName,
		Label:    label,
		Widget:   widget,
		Format:   element.NumberFormat,
		Required: element.Required,
		Value:    stringValue(element.DefaultValue),
		Target:   options.Mappings[element.DevName],
		Options:  element.Options,
		Errors:   options.Errors[element.DevName],
	}
	if value, ok := options.Values[element.DevName]; ok {
		field.Value = stringValue(value)
	}
	if widget == widgets.WidgetNumber {
		field.Step = "any"
	}
	return field
}

func stringValue(value any) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(value))
}
