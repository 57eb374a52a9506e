package picklist_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-giftentry/pkg/mapping"
	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/picklist"
	"github.com/goliatone/go-giftentry/pkg/remote"
	"github.com/goliatone/go-giftentry/pkg/widgets"
)

func TestResolveTemplate(t *testing.T) {
	reg, err := mapping.NewFromWrapper(model.RenderWrapper{
		MappingSet: model.MappingSet{FieldMappings: map[string]model.FieldMapping{
			"Donation_Stage": {SourceAPIName: "npsp__Donation_Stage__c"},
			"Bogus":          {SourceAPIName: "npsp__Bogus__c"},
		}},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	template := model.FormTemplate{Layout: model.Layout{Sections: []model.Section{{
		Elements: []model.Element{
			{DevName: "Donation_Stage", ElementType: picklist.ElementType, WidgetKind: widgets.WidgetText},
			{DevName: "Notes", WidgetKind: widgets.WidgetText},
		},
	}}}}

	cat := describeFixture(t)
	if err := picklist.ResolveTemplate(context.Background(), &template, cat, reg, "DataImport__c", ""); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	stage := template.Layout.Sections[0].Elements[0]
	want := []model.PicklistOption{{Label: "Prospecting", Value: "Prospecting"}, {Label: "Closed Won", Value: "Closed Won"}}
	if diff := cmp.Diff(want, stage.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if stage.WidgetKind != widgets.WidgetCombobox {
		t.Fatalf("picklist should render as combobox, got %q", stage.WidgetKind)
	}
	if notes := template.Layout.Sections[0].Elements[1]; notes.Options != nil {
		t.Fatalf("non picklist elements must be untouched: %+v", notes)
	}

	bad := model.FormTemplate{Layout: model.Layout{Sections: []model.Section{{
		Elements: []model.Element{{DevName: "Bogus", ElementType: picklist.ElementType}},
	}}}}
	err = picklist.ResolveTemplate(context.Background(), &bad, cat, reg, "DataImport__c", "")
	var fetchErr *remote.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
}
