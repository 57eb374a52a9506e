package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/remote"
	"github.com/goliatone/go-giftentry/pkg/source"
)

const (
	describeTypeExtension     = "x-describe-type"
	enumLabelsExtension       = "x-enum-labels"
	recordTypeValuesExtension = "x-record-type-values"
)

// ErrUnknownObject is wrapped by lookups against a schema the document does
// not define.
var ErrUnknownObject = errors.New("catalog: unknown object")

// ErrUnknownField is wrapped by lookups against a property the schema does not
// define.
var ErrUnknownField = errors.New("catalog: unknown field")

// Field is a single describe entry.
type Field struct {
	APIName  string
	Label    string
	DataType model.DataType
	Required bool
	Options  []model.PicklistOption
	// RecordTypeValues lists enum values available per record type id.
	RecordTypeValues map[string][]string
}

// Catalog is an immutable, parsed describe document.
type Catalog struct {
	batchObject  string
	externalRefs bool
	logger       *zap.Logger

	objects map[string]map[string]Field
}

var (
	_ remote.CatalogService  = (*Catalog)(nil)
	_ remote.DescribeService = (*Catalog)(nil)
)

func newCatalog(options ...Option) *Catalog {
	c := &Catalog{
		batchObject: DefaultBatchObject,
		logger:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Parse builds a Catalog from raw OpenAPI JSON or YAML.
func Parse(ctx context.Context, raw []byte, options ...Option) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("catalog: document payload is empty")
	}

	c := newCatalog(options...)
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: c.externalRefs,
	}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog: load document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errors.New("catalog: document does not define any component schemas")
	}

	c.objects = make(map[string]map[string]Field, len(doc.Components.Schemas))
	for objectName, ref := range doc.Components.Schemas {
		if ref == nil || ref.Value == nil {
			continue
		}
		fields, err := convertObject(ref.Value)
		if err != nil {
			return nil, fmt.Errorf("catalog: schema %q: %w", objectName, err)
		}
		c.objects[objectName] = fields
	}

	c.logger.Debug("describe catalog parsed",
		zap.Int("objects", len(c.objects)),
		zap.String("batch_object", c.batchObject),
	)
	return c, nil
}

// Load reads the document behind src with loader and parses it.
func Load(ctx context.Context, loader source.Loader, src source.Source, options ...Option) (*Catalog, error) {
	if loader == nil {
		return nil, errors.New("catalog: loader is required")
	}
	raw, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("catalog: read document: %w", err)
	}
	return Parse(ctx, raw, options...)
}

// Objects returns the object names defined by the document in sorted order.
func (c *Catalog) Objects() []string {
	names := make([]string, 0, len(c.objects))
	for name := range c.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fields returns every field of object ordered by API name.
func (c *Catalog) Fields(object string) ([]Field, error) {
	fields, ok := c.objects[object]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownObject, object)
	}
	out := make([]Field, 0, len(fields))
	for _, field := range fields {
		out = append(out, cloneField(field))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].APIName < out[j].APIName })
	return out, nil
}

// Field returns a single field described by object and API name.
func (c *Catalog) Field(object, apiName string) (Field, error) {
	fields, ok := c.objects[object]
	if !ok {
		return Field{}, fmt.Errorf("%w %q", ErrUnknownObject, object)
	}
	field, ok := fields[apiName]
	if !ok {
		return Field{}, fmt.Errorf("%w %q on %s", ErrUnknownField, apiName, object)
	}
	return cloneField(field), nil
}

// BatchFields lists the batch object's fields as catalog entries. Required
// fields are reported with IsRequired; the selection editor decides which of
// them are locked.
func (c *Catalog) BatchFields(ctx context.Context) ([]model.AvailableField, error) {
	if err := ctx.Err(); err != nil {
		return nil, remote.NewFetchError("batch fields", c.batchObject, err)
	}
	fields, err := c.Fields(c.batchObject)
	if err != nil {
		return nil, remote.NewFetchError("batch fields", c.batchObject, err)
	}
	out := make([]model.AvailableField, 0, len(fields))
	for _, field := range fields {
		out = append(out, model.AvailableField{
			Value:           field.APIName,
			Label:           field.Label,
			DataType:        field.DataType,
			IsRequired:      field.Required,
			PicklistOptions: field.Options,
		})
	}
	return out, nil
}

// PicklistValues returns the options for "Object.Field". When recordTypeID
// names a record type listed in x-record-type-values, only its subset is
// returned, in enum order.
func (c *Catalog) PicklistValues(ctx context.Context, fieldAPIName, recordTypeID string) ([]model.PicklistOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, remote.NewFetchError("picklist values", fieldAPIName, err)
	}
	object, name, ok := strings.Cut(strings.TrimSpace(fieldAPIName), ".")
	if !ok || object == "" || name == "" {
		return nil, remote.NewFetchError("picklist values", fieldAPIName, errors.New("field name must be qualified as Object.Field"))
	}
	field, err := c.Field(object, name)
	if err != nil {
		return nil, remote.NewFetchError("picklist values", fieldAPIName, err)
	}
	if len(field.Options) == 0 {
		return nil, remote.NewFetchError("picklist values", fieldAPIName, errors.New("field is not a picklist"))
	}

	allowed, scoped := field.RecordTypeValues[strings.TrimSpace(recordTypeID)]
	if !scoped {
		return field.Options, nil
	}
	permitted := make(map[string]struct{}, len(allowed))
	for _, value := range allowed {
		permitted[value] = struct{}{}
	}
	out := make([]model.PicklistOption, 0, len(allowed))
	for _, option := range field.Options {
		if _, ok := permitted[option.Value]; ok {
			out = append(out, option)
		}
	}
	return out, nil
}

func cloneField(field Field) Field {
	out := field
	out.Options = append([]model.PicklistOption(nil), field.Options...)
	if len(field.RecordTypeValues) > 0 {
		out.RecordTypeValues = make(map[string][]string, len(field.RecordTypeValues))
		for key, values := range field.RecordTypeValues {
			out.RecordTypeValues[key] = append([]string(nil), values...)
		}
	}
	return out
}
