package picklist

import (
	"context"

	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/remote"
	"github.com/goliatone/go-giftentry/pkg/widgets"
)

// ElementType marks template elements whose options come from describe
// metadata.
const ElementType = "picklist"

// Lookup resolves a template element to its field mapping. *mapping.Registry
// satisfies it.
type Lookup interface {
	Lookup(key string) (model.FieldMapping, error)
}

// ResolveTemplate loads options for every picklist element that has none yet,
// reading them from object's field named by the element's source API name.
// The first failure aborts and is returned as a *remote.FetchError.
func ResolveTemplate(ctx context.Context, template *model.FormTemplate, describe remote.DescribeService, lookup Lookup, object, recordTypeID string) error {
	if template == nil {
		return nil
	}
	for sIdx := range template.Layout.Sections {
		elements := template.Layout.Sections[sIdx].Elements
		for eIdx := range elements {
			element := &elements[eIdx]
			if element.ElementType != ElementType || len(element.Options) > 0 {
				continue
			}
			mapping, err := lookup.Lookup(element.DevName)
			if err != nil {
				return err
			}
			field := &Field{
				ObjectName: object,
				FieldName:  mapping.SourceAPIName,
				Label:      element.Label,
				Required:   element.Required,
			}
			if err := field.Load(ctx, describe, recordTypeID); err != nil {
				return err
			}
			element.Options = field.Options()
			element.WidgetKind = widgets.WidgetCombobox
		}
	}
	return nil
}
