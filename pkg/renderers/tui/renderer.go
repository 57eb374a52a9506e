// Package tui collects gift entry values in the terminal. Each template
// section is prompted in order and the result is a []model.SectionValues ready
// for the save orchestrator.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/render"
	"github.com/goliatone/go-giftentry/pkg/widgets"
)

const noneOption = "--None--"

// Renderer implements render.Renderer for terminal-driven entry sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       NewSurveyDriver(),
		outputFormat: OutputFormatJSON,
		theme:        Theme{SectionPrefix: "== ", ErrorPrefix: "! "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain"
	}
	return "application/json"
}

// Render prompts for every element and serializes the collected sections.
func (r *Renderer) Render(ctx context.Context, template model.FormTemplate, opts render.RenderOptions) ([]byte, error) {
	sections, err := r.Collect(ctx, template, opts)
	if err != nil {
		return nil, err
	}
	return r.serialize(sections)
}

// Collect prompts for every element and returns one SectionValues per layout
// section, in layout order.
func (r *Renderer) Collect(ctx context.Context, template model.FormTemplate, opts render.RenderOptions) ([]model.SectionValues, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	if len(template.Layout.Sections) == 0 {
		return nil, ErrNoSections
	}

	out := make([]model.SectionValues, 0, len(template.Layout.Sections))
	for _, section := range template.Layout.Sections {
		if err := r.driver.Info(ctx, r.theme.SectionPrefix+section.Label); err != nil {
			return nil, err
		}
		collected := model.SectionValues{Values: model.Values{}}
		for _, element := range section.Elements {
			for _, message := range opts.Errors[element.DevName] {
				if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
					return nil, err
				}
			}
			value, set, err := r.promptElement(ctx, element, defaultFor(element, opts))
			if err != nil {
				return nil, err
			}
			if set {
				collected.Values[element.DevName] = value
			}
		}
		out = append(out, collected)
	}
	return out, nil
}

func defaultFor(element model.Element, opts render.RenderOptions) any {
	if value, ok := opts.Values[element.DevName]; ok {
		return value
	}
	return element.DefaultValue
}

// promptElement returns the typed value and whether one was provided.
func (r *Renderer) promptElement(ctx context.Context, element model.Element, current any) (any, bool, error) {
	label := element.Label
	if label == "" {
		label = element.DevName
	}

	switch {
	case len(element.Options) > 0 || element.WidgetKind == widgets.WidgetCombobox:
		return r.promptSelect(ctx, element, label, current)
	case element.WidgetKind == widgets.WidgetCheckbox || element.DataType == model.DataTypeBoolean:
		value, err := r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: asBool(current)})
		if err != nil {
			return nil, false, err
		}
		return value, true, nil
	}

	validator := validatorFor(element)
	if element.DataType == model.DataTypeText {
		return r.promptTextArea(ctx, element, label, current, validator)
	}
	raw, err := r.driver.Input(ctx, InputConfig{
		Message:   label,
		Default:   asString(current),
		Help:      helpFor(element),
		Validator: validator,
	})
	if err != nil {
		return nil, false, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false, nil
	}
	if err := validator(raw); err != nil {
		return nil, false, fmt.Errorf("tui: %s: %w", element.DevName, err)
	}
	if element.WidgetKind == widgets.WidgetNumber {
		number, _ := strconv.ParseFloat(raw, 64)
		return number, true, nil
	}
	return raw, true, nil
}

// promptTextArea collects long text. Line breaks are kept; surrounding
// whitespace is not.
func (r *Renderer) promptTextArea(ctx context.Context, element model.Element, label string, current any, validator func(string) error) (any, bool, error) {
	raw, err := r.driver.TextArea(ctx, TextAreaConfig{
		Message:   label,
		Default:   asString(current),
		Help:      helpFor(element),
		Validator: validator,
	})
	if err != nil {
		return nil, false, err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if element.Required {
			return nil, false, fmt.Errorf("tui: %s: value is required", element.DevName)
		}
		return nil, false, nil
	}
	return raw, true, nil
}

func (r *Renderer) promptSelect(ctx context.Context, element model.Element, label string, current any) (any, bool, error) {
	options := make([]string, 0, len(element.Options)+1)
	if !element.Required {
		options = append(options, noneOption)
	}
	offset := len(options)
	for _, option := range element.Options {
		options = append(options, option.Label)
	}

	defaultIndex := 0
	currentValue := asString(current)
	for idx, option := range element.Options {
		if option.Value == currentValue {
			defaultIndex = idx + offset
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{Message: label, Options: options, DefaultIndex: defaultIndex})
	if err != nil {
		return nil, false, err
	}
	if idx < offset || idx-offset >= len(element.Options) {
		return nil, false, nil
	}
	return element.Options[idx-offset].Value, true, nil
}

func validatorFor(element model.Element) func(string) error {
	required := element.Required
	return func(raw string) error {
		value := strings.TrimSpace(raw)
		if value == "" {
			if required {
				return errors.New("value is required")
			}
			return nil
		}
		switch element.WidgetKind {
		case widgets.WidgetNumber:
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				return errors.New("enter a number")
			}
		case widgets.WidgetDate:
			if _, err := time.Parse(time.DateOnly, value); err != nil {
				return errors.New("enter a date as YYYY-MM-DD")
			}
		case widgets.WidgetDateTimeLocal:
			if _, err := time.Parse("2006-01-02T15:04", value); err != nil {
				return errors.New("enter a date and time as YYYY-MM-DDTHH:MM")
			}
		case widgets.WidgetTime:
			if _, err := time.Parse("15:04", value); err != nil {
				return errors.New("enter a time as HH:MM")
			}
		case widgets.WidgetEmail:
			if _, err := mail.ParseAddress(value); err != nil {
				return errors.New("enter a valid email address")
			}
		case widgets.WidgetURL:
			if parsed, err := url.ParseRequestURI(value); err != nil || parsed.Host == "" {
				return errors.New("enter an absolute URL")
			}
		}
		return nil
	}
}

func helpFor(element model.Element) string {
	if element.NumberFormat == widgets.FormatPercentFixed {
		return "Percentage, for example 12.5"
	}
	return ""
}

func asString(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func asBool(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		parsed, _ := strconv.ParseBool(typed)
		return parsed
	default:
		return false
	}
}

func (r *Renderer) serialize(sections []model.SectionValues) ([]byte, error) {
	if r.outputFormat != OutputFormatPrettyText {
		return json.MarshalIndent(sections, "", "  ")
	}

	var b strings.Builder
	for idx, section := range sections {
		fmt.Fprintf(&b, "section %d\n", idx+1)
		keys := make([]string, 0, len(section.Values))
		for key := range section.Values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&b, "  %s: %v\n", key, section.Values[key])
		}
	}
	return []byte(b.String()), nil
}
