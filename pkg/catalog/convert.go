package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-giftentry/pkg/model"
)

func convertObject(schema *openapi3.Schema) (map[string]Field, error) {
	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	fields := make(map[string]Field, len(schema.Properties))
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		field, err := convertField(name, ref.Value)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		_, field.Required = required[name]
		fields[name] = field
	}
	return fields, nil
}

func convertField(name string, schema *openapi3.Schema) (Field, error) {
	field := Field{
		APIName: name,
		Label:   strings.TrimSpace(schema.Title),
	}
	if field.Label == "" {
		field.Label = name
	}

	dataType, err := describeType(schema)
	if err != nil {
		return Field{}, err
	}
	field.DataType = dataType

	if len(schema.Enum) > 0 {
		labels, err := stringMapExtension(schema.Extensions, enumLabelsExtension)
		if err != nil {
			return Field{}, err
		}
		field.Options = make([]model.PicklistOption, 0, len(schema.Enum))
		for _, raw := range schema.Enum {
			value := fmt.Sprint(raw)
			label := value
			if custom, ok := labels[value]; ok && custom != "" {
				label = custom
			}
			field.Options = append(field.Options, model.PicklistOption{Label: label, Value: value})
		}

		byRecordType, err := stringSliceMapExtension(schema.Extensions, recordTypeValuesExtension)
		if err != nil {
			return Field{}, err
		}
		field.RecordTypeValues = byRecordType
	}
	return field, nil
}

// describeType honours x-describe-type, otherwise derives the type from the
// JSON Schema type and format.
func describeType(schema *openapi3.Schema) (model.DataType, error) {
	if raw, ok := extensionValue(schema.Extensions, describeTypeExtension); ok {
		var name string
		if err := decodeExtension(raw, &name); err != nil {
			return "", fmt.Errorf("%s: %w", describeTypeExtension, err)
		}
		dataType, known := model.ParseDataType(name)
		if !known {
			return "", fmt.Errorf("%s: unsupported describe type %q", describeTypeExtension, name)
		}
		return dataType, nil
	}

	var schemaType string
	if schema.Type != nil {
		if values := schema.Type.Slice(); len(values) > 0 {
			schemaType = values[0]
		}
	}

	switch schemaType {
	case openapi3.TypeBoolean:
		return model.DataTypeBoolean, nil
	case openapi3.TypeInteger, openapi3.TypeNumber:
		return model.DataTypeNumber, nil
	}

	switch strings.ToLower(schema.Format) {
	case "date":
		return model.DataTypeDate, nil
	case "date-time":
		return model.DataTypeDateTime, nil
	case "time":
		return model.DataTypeTime, nil
	case "email":
		return model.DataTypeEmail, nil
	case "uri", "url":
		return model.DataTypeURL, nil
	case "textarea":
		return model.DataTypeText, nil
	}
	return model.DataTypeString, nil
}

func extensionValue(extensions map[string]any, key string) (any, bool) {
	if len(extensions) == 0 {
		return nil, false
	}
	value, ok := extensions[key]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// decodeExtension converts a decoded extension value (or a raw JSON message)
// into target by round-tripping through JSON.
func decodeExtension(raw any, target any) error {
	var data []byte
	switch typed := raw.(type) {
	case json.RawMessage:
		data = typed
	case []byte:
		data = typed
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return err
		}
		data = encoded
	}
	return json.Unmarshal(data, target)
}

func stringMapExtension(extensions map[string]any, key string) (map[string]string, error) {
	raw, ok := extensionValue(extensions, key)
	if !ok {
		return nil, nil
	}
	var out map[string]string
	if err := decodeExtension(raw, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return out, nil
}

func stringSliceMapExtension(extensions map[string]any, key string) (map[string][]string, error) {
	raw, ok := extensionValue(extensions, key)
	if !ok {
		return nil, nil
	}
	var out map[string][]string
	if err := decodeExtension(raw, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return out, nil
}
