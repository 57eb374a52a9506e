package mapping_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-giftentry/pkg/mapping"
	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/remote"
	"github.com/goliatone/go-giftentry/pkg/templates"
	"github.com/goliatone/go-giftentry/pkg/testsupport"
	"github.com/goliatone/go-giftentry/pkg/widgets"
)

func loadedRegistry(t *testing.T, options ...mapping.Option) *mapping.Registry {
	t.Helper()

	store, err := templates.LoadFS(testsupport.TemplatesFS(t))
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}
	options = append([]mapping.Option{mapping.WithTemplateService(store)}, options...)
	reg := mapping.New(options...)
	if err := reg.Load(context.Background()); err != nil {
		t.Fatalf("load registry: %v", err)
	}
	return reg
}

func TestRegistry_LookupResolvesSourceAPIName(t *testing.T) {
	reg := loadedRegistry(t)
	if !reg.Ready() {
		t.Fatalf("registry should be ready after load")
	}

	got, err := reg.Lookup("Donation_Amount")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.SourceAPIName != "npsp__Donation_Amount__c" {
		t.Fatalf("unexpected source api name %q", got.SourceAPIName)
	}

	object, err := reg.TargetObject("Payment_Method")
	if err != nil {
		t.Fatalf("target object: %v", err)
	}
	if object.APIName != "npe01__OppPayment__c" {
		t.Fatalf("unexpected object api name %q", object.APIName)
	}
}

func TestRegistry_LookupMissIsNotFound(t *testing.T) {
	reg := loadedRegistry(t)

	_, err := reg.Lookup("Unknown_Field")
	var notFound *mapping.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Key != "Unknown_Field" {
		t.Fatalf("unexpected key %q", notFound.Key)
	}

	if _, err := reg.ObjectMapping("Unknown_Object"); !mapping.IsNotFound(err) {
		t.Fatalf("expected object NotFoundError, got %v", err)
	}
}

func TestRegistry_LoadFailureLeavesNotReady(t *testing.T) {
	reg := mapping.New(
		mapping.WithTemplateService(testsupport.StaticTemplates{}),
		mapping.WithTemplateName("Missing Template"),
	)

	err := reg.Load(context.Background())
	var fetchErr *remote.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if reg.Ready() {
		t.Fatalf("registry must not be ready after a failed load")
	}
	if _, err := reg.Lookup("Donation_Amount"); !errors.Is(err, mapping.ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
}

func TestRegistry_LoadWithoutServiceFails(t *testing.T) {
	err := mapping.New().Load(context.Background())
	if !errors.Is(err, mapping.ErrTemplateServiceRequired) {
		t.Fatalf("expected ErrTemplateServiceRequired, got %v", err)
	}
}

func TestRegistry_FailedReloadClearsPreviousMappings(t *testing.T) {
	wrapper := model.RenderWrapper{
		FormTemplate: model.FormTemplate{Name: mapping.DefaultTemplateName},
		MappingSet: model.MappingSet{
			FieldMappings: map[string]model.FieldMapping{
				"A": {SourceAPIName: "A__c"},
			},
		},
	}
	service := testsupport.StaticTemplates{mapping.DefaultTemplateName: wrapper}
	reg := mapping.New(mapping.WithTemplateService(service))
	if err := reg.Load(context.Background()); err != nil {
		t.Fatalf("first load: %v", err)
	}

	delete(service, mapping.DefaultTemplateName)
	if err := reg.Load(context.Background()); err == nil {
		t.Fatalf("expected second load to fail")
	}
	if reg.Ready() {
		t.Fatalf("registry must not stay ready after a failed reload")
	}
}

func TestRegistry_TemplateIsDecorated(t *testing.T) {
	widgetRegistry := widgets.NewRegistry()
	widgetRegistry.Register(model.DataTypeDate, "date-picker", "")

	var decorated bool
	reg := loadedRegistry(t,
		mapping.WithWidgets(widgetRegistry),
		mapping.WithDecorators(model.DecoratorFunc(func(*model.FormTemplate) error {
			decorated = true
			return nil
		})),
	)
	if !decorated {
		t.Fatalf("custom decorator did not run")
	}

	template, err := reg.Template()
	if err != nil {
		t.Fatalf("template: %v", err)
	}

	kinds := map[string]string{}
	formats := map[string]string{}
	for _, element := range template.Elements() {
		kinds[element.DevName] = element.WidgetKind
		if element.NumberFormat != "" {
			formats[element.DevName] = element.NumberFormat
		}
	}

	wantKinds := map[string]string{
		"Account1_Name":          widgets.WidgetText,
		"Contact1_Email":         widgets.WidgetEmail,
		"Donation_Amount":        widgets.WidgetNumber,
		"Donation_Date":          "date-picker",
		"Payment_Method":         widgets.WidgetCombobox,
		"Tax_Deductible_Percent": widgets.WidgetNumber,
	}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Fatalf("widget kinds mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"Tax_Deductible_Percent": widgets.FormatPercentFixed}, formats); diff != "" {
		t.Fatalf("number formats mismatch (-want +got):\n%s", diff)
	}

	if kind, _ := reg.WidgetKindFor(model.DataTypeDate); kind != "date-picker" {
		t.Fatalf("registry should delegate to widget overrides, got %q", kind)
	}
	if format, ok := reg.NumericFormatFor(model.DataTypePercent); !ok || format != widgets.FormatPercentFixed {
		t.Fatalf("percent format: got %q (ok=%v)", format, ok)
	}
}

func TestRegistry_TemplateCopiesAreIsolated(t *testing.T) {
	reg := loadedRegistry(t)

	first, err := reg.Template()
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	first.Layout.Sections[0].Elements[0].Label = "mutated"

	second, _ := reg.Template()
	if second.Layout.Sections[0].Elements[0].Label == "mutated" {
		t.Fatalf("template copies must not share element storage")
	}
}

func TestRegistry_ConcurrentLookups(t *testing.T) {
	reg := loadedRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, key := range reg.Keys() {
				if _, err := reg.Lookup(key); err != nil {
					t.Errorf("lookup %s: %v", key, err)
				}
			}
		}()
	}
	wg.Wait()
}

func TestNewFromWrapper(t *testing.T) {
	reg, err := mapping.NewFromWrapper(model.RenderWrapper{
		MappingSet: model.MappingSet{
			FieldMappings: map[string]model.FieldMapping{"A": {SourceAPIName: "A__c"}},
		},
	})
	if err != nil {
		t.Fatalf("new from wrapper: %v", err)
	}
	got, err := reg.Lookup("A")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	want := model.FieldMapping{DevName: "A", SourceAPIName: "A__c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
}
