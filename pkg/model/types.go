package model

import "strings"

// DataType is the describe-style field type reported by the platform.
type DataType string

const (
	DataTypeBoolean  DataType = "BOOLEAN"
	DataTypeCurrency DataType = "CURRENCY"
	DataTypeDate     DataType = "DATE"
	DataTypeDateTime DataType = "DATETIME"
	DataTypeEmail    DataType = "EMAIL"
	DataTypeNumber   DataType = "NUMBER"
	DataTypePercent  DataType = "PERCENT"
	DataTypeString   DataType = "STRING"
	DataTypePhone    DataType = "PHONE"
	DataTypeText     DataType = "TEXT"
	DataTypeTime     DataType = "TIME"
	DataTypeURL      DataType = "URL"
)

// DataTypes lists every supported data type in declaration order.
func DataTypes() []DataType {
	return []DataType{
		DataTypeBoolean,
		DataTypeCurrency,
		DataTypeDate,
		DataTypeDateTime,
		DataTypeEmail,
		DataTypeNumber,
		DataTypePercent,
		DataTypeString,
		DataTypePhone,
		DataTypeText,
		DataTypeTime,
		DataTypeURL,
	}
}

// ParseDataType normalises raw describe types ("currency", " Date ") into a
// DataType. The boolean result reports whether the value is a known type.
func ParseDataType(raw string) (DataType, bool) {
	candidate := DataType(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range DataTypes() {
		if candidate == known {
			return known, true
		}
	}
	return candidate, false
}

// FieldMapping describes where a staging field's value is written on save.
// SourceAPIName is the Data Import field that receives the value;
// TargetAPIName is the field populated on the derived record.
type FieldMapping struct {
	DevName       string   `json:"DeveloperName" yaml:"DeveloperName"`
	Label         string   `json:"MasterLabel,omitempty" yaml:"MasterLabel,omitempty"`
	SourceAPIName string   `json:"Source_Field_API_Name" yaml:"Source_Field_API_Name"`
	TargetAPIName string   `json:"Target_Field_API_Name,omitempty" yaml:"Target_Field_API_Name,omitempty"`
	TargetObject  string   `json:"Target_Object_Mapping_Dev_Name,omitempty" yaml:"Target_Object_Mapping_Dev_Name,omitempty"`
	DataType      DataType `json:"Source_Field_Data_Type,omitempty" yaml:"Source_Field_Data_Type,omitempty"`
	Required      bool     `json:"Is_Required,omitempty" yaml:"Is_Required,omitempty"`
}

// ObjectMapping describes a destination object referenced by field mappings.
type ObjectMapping struct {
	DevName string `json:"DeveloperName" yaml:"DeveloperName"`
	Label   string `json:"MasterLabel,omitempty" yaml:"MasterLabel,omitempty"`
	APIName string `json:"Object_API_Name" yaml:"Object_API_Name"`
}

// MappingSet groups field and object mappings keyed by developer name.
type MappingSet struct {
	FieldMappings  map[string]FieldMapping  `json:"fieldMappingByDevName" yaml:"fieldMappingByDevName"`
	ObjectMappings map[string]ObjectMapping `json:"objectMappingByDevName" yaml:"objectMappingByDevName"`
}

// PicklistOption is a single enumerated choice.
type PicklistOption struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// AvailableField is an entry of the batch field catalog.
type AvailableField struct {
	Value                   string           `json:"value" yaml:"value"`
	Label                   string           `json:"label" yaml:"label"`
	DataType                DataType         `json:"dataType" yaml:"dataType"`
	IsRequired              bool             `json:"isRequired" yaml:"isRequired"`
	IsRequiredFieldDisabled bool             `json:"isRequiredFieldDisabled" yaml:"isRequiredFieldDisabled"`
	PicklistOptions         []PicklistOption `json:"picklistOptions,omitempty" yaml:"picklistOptions,omitempty"`
	// Checked mirrors the catalog checkbox state: true when the field is
	// part of the current selection.
	Checked bool `json:"checked,omitempty" yaml:"checked,omitempty"`
}

// SelectedField is a field chosen for the form. The order of a []SelectedField
// is the display order.
type SelectedField struct {
	Label                   string           `json:"label" yaml:"label"`
	Value                   string           `json:"value" yaml:"value"`
	Required                bool             `json:"required" yaml:"required"`
	IsRequiredFieldDisabled bool             `json:"isRequiredFieldDisabled" yaml:"isRequiredFieldDisabled"`
	AllowDefaultValue       bool             `json:"allowDefaultValue" yaml:"allowDefaultValue"`
	DefaultValue            any              `json:"defaultValue" yaml:"defaultValue"`
	DataType                DataType         `json:"dataType" yaml:"dataType"`
	PicklistOptions         []PicklistOption `json:"picklistOptions,omitempty" yaml:"picklistOptions,omitempty"`
}

// Element is a single input placed inside a form section. DevName keys into
// the field mapping set.
type Element struct {
	DevName      string           `json:"dataImportFieldMappingDevNames" yaml:"dataImportFieldMappingDevNames"`
	Label        string           `json:"label" yaml:"label"`
	ElementType  string           `json:"elementType,omitempty" yaml:"elementType,omitempty"`
	DataType     DataType         `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	Required     bool             `json:"required,omitempty" yaml:"required,omitempty"`
	DefaultValue any              `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Options      []PicklistOption `json:"picklistOptions,omitempty" yaml:"picklistOptions,omitempty"`
	WidgetKind   string           `json:"widgetKind,omitempty" yaml:"widgetKind,omitempty"`
	NumberFormat string           `json:"numberFormat,omitempty" yaml:"numberFormat,omitempty"`
}

// Section groups elements on the rendered form.
type Section struct {
	ID                 string    `json:"id,omitempty" yaml:"id,omitempty"`
	Label              string    `json:"label" yaml:"label"`
	DisplayType        string    `json:"displayType,omitempty" yaml:"displayType,omitempty"`
	DefaultDisplayMode string    `json:"defaultDisplayMode,omitempty" yaml:"defaultDisplayMode,omitempty"`
	Elements           []Element `json:"elements" yaml:"elements"`
}

// Layout carries the ordered sections of a template.
type Layout struct {
	Version  string    `json:"version" yaml:"version"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// FormTemplate is the persisted form definition an administrator builds.
type FormTemplate struct {
	Name              string          `json:"name" yaml:"name"`
	Description       string          `json:"description,omitempty" yaml:"description,omitempty"`
	Layout            Layout          `json:"layout" yaml:"layout"`
	BatchHeaderFields []SelectedField `json:"batchHeaderFields,omitempty" yaml:"batchHeaderFields,omitempty"`
}

// RenderWrapper is the template plus the mapping set it references, as
// returned by the template service.
type RenderWrapper struct {
	FormTemplate FormTemplate `json:"formTemplate" yaml:"formTemplate"`
	MappingSet   MappingSet   `json:"fieldMappingSetWrapper" yaml:"fieldMappingSetWrapper"`
}

// Values maps field keys (mapping dev names) to user-entered values.
type Values map[string]any

// SectionValues holds what a single rendered section collected.
type SectionValues struct {
	Values       Values `json:"values,omitempty"`
	WidgetValues Values `json:"widgetValues,omitempty"`
}

// RecordPayload maps Data Import API names to values; it is what the
// record-create service receives.
type RecordPayload map[string]any
