package widgets

import (
	"strings"
	"sync"

	"github.com/goliatone/go-giftentry/pkg/model"
)

// Built-in widget kinds, named after the HTML input types they render as.
const (
	WidgetCheckbox      = "checkbox"
	WidgetNumber        = "number"
	WidgetDate          = "date"
	WidgetDateTimeLocal = "datetime-local"
	WidgetEmail         = "email"
	WidgetText          = "text"
	WidgetTel           = "tel"
	WidgetTime          = "time"
	WidgetURL           = "url"
	WidgetCombobox      = "combobox"
)

// FormatPercentFixed renders percentages with a fixed number of decimals.
const FormatPercentFixed = "percent-fixed"

var widgetByDataType = map[model.DataType]string{
	model.DataTypeBoolean:  WidgetCheckbox,
	model.DataTypeCurrency: WidgetNumber,
	model.DataTypeDate:     WidgetDate,
	model.DataTypeDateTime: WidgetDateTimeLocal,
	model.DataTypeEmail:    WidgetEmail,
	model.DataTypeNumber:   WidgetNumber,
	model.DataTypePercent:  WidgetNumber,
	model.DataTypeString:   WidgetText,
	model.DataTypePhone:    WidgetTel,
	model.DataTypeText:     WidgetText,
	model.DataTypeTime:     WidgetTime,
	model.DataTypeURL:      WidgetURL,
}

var numberFormatByDataType = map[model.DataType]string{
	model.DataTypePercent: FormatPercentFixed,
}

// WidgetKindFor returns the input widget kind for a data type. Every member of
// model.DataTypes resolves; unknown types report false.
func WidgetKindFor(dataType model.DataType) (string, bool) {
	kind, ok := widgetByDataType[dataType]
	return kind, ok
}

// NumericFormatFor returns the number formatter hint for a data type. Only
// PERCENT carries one.
func NumericFormatFor(dataType model.DataType) (string, bool) {
	format, ok := numberFormatByDataType[dataType]
	return format, ok
}

type rule struct {
	kind   string
	format string
}

// Registry resolves widget kinds for data types. Overrides registered through
// Register take precedence over the built-in tables; an explicit WidgetKind on
// an element always wins during decoration.
type Registry struct {
	mu        sync.RWMutex
	overrides map[model.DataType]rule
}

// NewRegistry constructs a registry backed by the built-in tables.
func NewRegistry() *Registry {
	return &Registry{overrides: make(map[model.DataType]rule)}
}

// Register overrides the widget kind (and optional number format) used for a
// data type. Empty kinds are ignored; the latest registration wins.
func (r *Registry) Register(dataType model.DataType, kind, format string) {
	if r == nil {
		return
	}
	trimmed := strings.TrimSpace(kind)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.overrides == nil {
		r.overrides = make(map[model.DataType]rule)
	}
	r.overrides[dataType] = rule{kind: trimmed, format: strings.TrimSpace(format)}
}

// Resolve returns the widget kind for a data type.
func (r *Registry) Resolve(dataType model.DataType) (string, bool) {
	if entry, ok := r.override(dataType); ok {
		return entry.kind, true
	}
	return WidgetKindFor(dataType)
}

// NumberFormat returns the numeric format hint for a data type.
func (r *Registry) NumberFormat(dataType model.DataType) (string, bool) {
	if entry, ok := r.override(dataType); ok {
		return entry.format, entry.format != ""
	}
	return NumericFormatFor(dataType)
}

func (r *Registry) override(dataType model.DataType) (rule, bool) {
	if r == nil {
		return rule{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.overrides[dataType]
	return entry, ok
}

// Decorate implements model.Decorator. Elements with picklist options resolve
// to a combobox; the rest resolve through their data type. Existing
// WidgetKind and NumberFormat values are preserved.
func (r *Registry) Decorate(template *model.FormTemplate) error {
	if template == nil {
		return nil
	}
	for sIdx := range template.Layout.Sections {
		elements := template.Layout.Sections[sIdx].Elements
		for eIdx := range elements {
			elements[eIdx] = r.decorateElement(elements[eIdx])
		}
	}
	return nil
}

func (r *Registry) decorateElement(element model.Element) model.Element {
	if element.WidgetKind == "" {
		if len(element.Options) > 0 {
			element.WidgetKind = WidgetCombobox
		} else if kind, ok := r.Resolve(element.DataType); ok {
			element.WidgetKind = kind
		}
	}
	if element.NumberFormat == "" {
		if format, ok := r.NumberFormat(element.DataType); ok {
			element.NumberFormat = format
		}
	}
	return element
}
