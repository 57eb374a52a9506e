package remote

import (
	"context"

	"github.com/goliatone/go-giftentry/pkg/model"
)

// TemplateService retrieves a form template and its mapping set by name.
type TemplateService interface {
	RetrieveFormTemplate(ctx context.Context, templateName string) (model.RenderWrapper, error)
}

// CatalogService lists the fields an administrator can place on a template.
type CatalogService interface {
	BatchFields(ctx context.Context) ([]model.AvailableField, error)
}

// DescribeService returns picklist values for a fully qualified field
// ("Object.Field") and record type.
type DescribeService interface {
	PicklistValues(ctx context.Context, fieldAPIName, recordTypeID string) ([]model.PicklistOption, error)
}

// RecordCreateService persists a Data Import record, processes it, and returns
// the identifier of the created record. widgetData is the JSON encoded widget
// side channel.
type RecordCreateService interface {
	Save(ctx context.Context, payload model.RecordPayload, widgetData string) (string, error)
}
