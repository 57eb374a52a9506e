package templates_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/remote"
	"github.com/goliatone/go-giftentry/pkg/templates"
	"github.com/goliatone/go-giftentry/pkg/testsupport"
)

func TestLoadFS_ParsesFixtureTemplate(t *testing.T) {
	store, err := templates.LoadFS(testsupport.TemplatesFS(t))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if diff := cmp.Diff([]string{testsupport.SingleGiftTemplate}, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	wrapper, err := store.RetrieveFormTemplate(context.Background(), testsupport.SingleGiftTemplate)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}

	if got := wrapper.FormTemplate.Layout.Version; got != "1.0" {
		t.Fatalf("layout version: got %q", got)
	}
	if got := len(wrapper.FormTemplate.Layout.Sections); got != 2 {
		t.Fatalf("expected 2 sections, got %d", got)
	}

	amount := wrapper.MappingSet.FieldMappings["Donation_Amount"]
	want := model.FieldMapping{
		DevName:       "Donation_Amount",
		Label:         "Donation Amount",
		SourceAPIName: "npsp__Donation_Amount__c",
		TargetAPIName: "Amount",
		TargetObject:  "Opportunity",
		DataType:      model.DataTypeCurrency,
		Required:      true,
	}
	if diff := cmp.Diff(want, amount); diff != "" {
		t.Fatalf("field mapping mismatch (-want +got):\n%s", diff)
	}
	if got := wrapper.MappingSet.ObjectMappings["Payment"].APIName; got != "npe01__OppPayment__c" {
		t.Fatalf("object mapping api name: got %q", got)
	}
}

func TestLoadFS_JSONDocument(t *testing.T) {
	files := fstest.MapFS{
		"minimal.json": {Data: []byte(`{
			"formTemplate": {"name": "Minimal", "layout": {"version": "2", "sections": []}},
			"fieldMappingSetWrapper": {
				"fieldMappingByDevName": {"Name": {"Source_Field_API_Name": "Name__c", "Source_Field_Data_Type": "string"}},
				"objectMappingByDevName": {}
			}
		}`)},
		"README.md": {Data: []byte("ignored")},
	}

	store, err := templates.LoadFS(files)
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	wrapper, err := store.RetrieveFormTemplate(context.Background(), "Minimal")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	got := wrapper.MappingSet.FieldMappings["Name"]
	if got.DevName != "Name" || got.DataType != model.DataTypeString {
		t.Fatalf("expected dev name backfill and normalised type, got %+v", got)
	}
}

func TestLoadFS_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		files fstest.MapFS
		want  string
	}{
		{
			name: "missing name",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("formTemplate:\n  description: nameless\n")},
			},
			want: "without a name",
		},
		{
			name: "duplicate",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("formTemplate:\n  name: Gift\n")},
				"b.yaml": {Data: []byte("formTemplate:\n  name: Gift\n")},
			},
			want: "duplicate template",
		},
		{
			name: "mapping without source api name",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("formTemplate:\n  name: Gift\nfieldMappingSetWrapper:\n  fieldMappingByDevName:\n    Amount:\n      Target_Field_API_Name: Amount\n")},
			},
			want: "no source API name",
		},
		{
			name: "empty file",
			files: fstest.MapFS{
				"a.yaml": {Data: []byte("   ")},
			},
			want: "is empty",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := templates.LoadFS(tc.files)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestStore_MissingTemplateIsFetchError(t *testing.T) {
	store, err := templates.LoadFS(nil)
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}

	_, err = store.RetrieveFormTemplate(context.Background(), "Unknown")
	var fetchErr *remote.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fetchErr.Target != "Unknown" {
		t.Fatalf("unexpected target %q", fetchErr.Target)
	}
}
