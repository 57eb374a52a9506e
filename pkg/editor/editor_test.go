package editor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-giftentry/pkg/editor"
	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/remote"
	"github.com/goliatone/go-giftentry/pkg/testsupport"
)

func batchFields() []model.AvailableField {
	return []model.AvailableField{
		{Value: "npsp__Batch_Description__c", Label: "Description", DataType: model.DataTypeText},
		{Value: "npsp__Expected_Count_of_Gifts__c", Label: "Expected Count of Gifts", DataType: model.DataTypeNumber},
		{Value: "Name", Label: "Name", DataType: model.DataTypeString},
		{Value: "npsp__Batch_Gift_Entry_Version__c", Label: "batch version", DataType: model.DataTypeNumber},
		{Value: "npsp__RequireTotalMatch__c", Label: "Require Total Match", DataType: model.DataTypeBoolean},
	}
}

func initialised(t *testing.T, options ...editor.Option) *editor.Editor {
	t.Helper()

	ed := editor.New(options...)
	if err := ed.Initialize(batchFields()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return ed
}

func selectedValues(fields []model.SelectedField) []string {
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, field.Value)
	}
	return out
}

func TestInitialize_RequiredNameEndToEnd(t *testing.T) {
	ed := editor.New(editor.WithRequiredKeys("Name"))
	err := ed.Initialize([]model.AvailableField{{Value: "Name", Label: "Name", IsRequired: true}})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}

	want := []model.SelectedField{{Value: "Name", Label: "Name", Required: true, IsRequiredFieldDisabled: true}}
	if diff := cmp.Diff(want, ed.Snapshot()); diff != "" {
		t.Fatalf("selected mismatch (-want +got):\n%s", diff)
	}
}

func TestInitialize_SortsByLabelCaseSensitive(t *testing.T) {
	ed := initialised(t)

	var labels []string
	for _, field := range ed.Available() {
		labels = append(labels, field.Label)
	}
	want := []string{"Description", "Expected Count of Gifts", "Name", "Require Total Match", "batch version"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("label order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortByLabel_Idempotent(t *testing.T) {
	fields := append(batchFields(),
		model.AvailableField{Value: "dup_b", Label: "Name"},
		model.AvailableField{Value: "dup_a", Label: "Description"},
	)
	once := editor.SortByLabel(fields)
	twice := editor.SortByLabel(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("sort is not idempotent (-once +twice):\n%s", diff)
	}

	// Stable: equal labels keep their input order.
	var nameValues []string
	for _, field := range once {
		if field.Label == "Name" {
			nameValues = append(nameValues, field.Value)
		}
	}
	if diff := cmp.Diff([]string{"Name", "dup_b"}, nameValues); diff != "" {
		t.Fatalf("stable order mismatch (-want +got):\n%s", diff)
	}
}

func TestInitialize_RequiredKeysAlwaysSelected(t *testing.T) {
	fields := batchFields()
	reversed := make([]model.AvailableField, len(fields))
	for idx := range fields {
		reversed[len(fields)-1-idx] = fields[idx]
	}

	for name, available := range map[string][]model.AvailableField{"forward": fields, "reversed": reversed} {
		available := available
		t.Run(name, func(t *testing.T) {
			ed := editor.New(editor.WithRequiredKeys("npsp__RequireTotalMatch__c", "Name"))
			if err := ed.Initialize(available); err != nil {
				t.Fatalf("initialize: %v", err)
			}
			if diff := cmp.Diff([]string{"npsp__RequireTotalMatch__c", "Name"}, selectedValues(ed.Snapshot())); diff != "" {
				t.Fatalf("required keys mismatch (-want +got):\n%s", diff)
			}
			for _, field := range ed.Snapshot() {
				if !field.Required || !field.IsRequiredFieldDisabled {
					t.Fatalf("required field %s not locked: %+v", field.Value, field)
				}
			}
		})
	}
}

func TestInitialize_MissingRequiredKeyIsInvalid(t *testing.T) {
	ed := editor.New(editor.WithRequiredKeys("Missing__c"))
	err := ed.Initialize(batchFields())

	var invalid *editor.InvalidKeyError
	if !errors.As(err, &invalid) || invalid.Key != "Missing__c" {
		t.Fatalf("expected InvalidKeyError for Missing__c, got %v", err)
	}
	if ed.Initialized() {
		t.Fatalf("editor must stay uninitialised")
	}
}

func TestInitialize_SeededSelectionMarksCheckboxes(t *testing.T) {
	ed := editor.New()
	seed := []model.SelectedField{
		{Value: "npsp__Batch_Description__c", Label: "Description", DataType: model.DataTypeText},
		{Value: "Name", Label: "Name"},
	}
	if err := ed.SetSelected(seed); err != nil {
		t.Fatalf("set selected: %v", err)
	}
	if err := ed.Initialize(batchFields()); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	if diff := cmp.Diff([]string{"npsp__Batch_Description__c", "Name"}, selectedValues(ed.Snapshot())); diff != "" {
		t.Fatalf("seeded selection mismatch (-want +got):\n%s", diff)
	}
	checked := map[string]bool{}
	for _, field := range ed.Available() {
		checked[field.Value] = field.Checked
	}
	want := map[string]bool{
		"npsp__Batch_Description__c":        true,
		"npsp__Expected_Count_of_Gifts__c":  false,
		"Name":                              true,
		"npsp__Batch_Gift_Entry_Version__c": false,
		"npsp__RequireTotalMatch__c":        false,
	}
	if diff := cmp.Diff(want, checked); diff != "" {
		t.Fatalf("checked mismatch (-want +got):\n%s", diff)
	}
}

func TestToggle_IsMembershipInverse(t *testing.T) {
	ed := initialised(t)
	if err := ed.Toggle("npsp__Batch_Description__c"); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if err := ed.Toggle("npsp__RequireTotalMatch__c"); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	before := ed.Snapshot()

	if err := ed.Toggle("npsp__Batch_Description__c"); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if err := ed.Toggle("npsp__Batch_Description__c"); err != nil {
		t.Fatalf("toggle on again: %v", err)
	}

	after := ed.Snapshot()
	if diff := cmp.Diff([]string{"Name", "npsp__RequireTotalMatch__c", "npsp__Batch_Description__c"}, selectedValues(after)); diff != "" {
		t.Fatalf("re-added field should append (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before[1], after[2]); diff != "" {
		t.Fatalf("re-added field differs (-before +after):\n%s", diff)
	}
}

func TestToggle_DerivesSelectedField(t *testing.T) {
	ed := initialised(t)
	if err := ed.Toggle("npsp__Expected_Count_of_Gifts__c"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	snapshot := ed.Snapshot()
	got := snapshot[len(snapshot)-1]
	want := model.SelectedField{
		Label:    "Expected Count of Gifts",
		Value:    "npsp__Expected_Count_of_Gifts__c",
		DataType: model.DataTypeNumber,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("derived field mismatch (-want +got):\n%s", diff)
	}
}

func TestToggle_Errors(t *testing.T) {
	if err := editor.New().Toggle("Name"); !errors.Is(err, editor.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}

	ed := initialised(t)
	if err := ed.Toggle("Name"); !errors.Is(err, editor.ErrRequiredField) {
		t.Fatalf("expected ErrRequiredField, got %v", err)
	}
	var invalid *editor.InvalidKeyError
	if err := ed.Toggle("Unknown__c"); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidKeyError, got %v", err)
	}
	if diff := cmp.Diff([]string{"Name"}, selectedValues(ed.Snapshot())); diff != "" {
		t.Fatalf("failed toggles must not change selection (-want +got):\n%s", diff)
	}
}

func TestMove(t *testing.T) {
	ed := initialised(t)
	for _, key := range []string{"npsp__Batch_Description__c", "npsp__RequireTotalMatch__c", "npsp__Expected_Count_of_Gifts__c"} {
		if err := ed.Toggle(key); err != nil {
			t.Fatalf("toggle %s: %v", key, err)
		}
	}
	original := selectedValues(ed.Snapshot())

	if err := ed.MoveUp("npsp__RequireTotalMatch__c"); err != nil {
		t.Fatalf("move up: %v", err)
	}
	if diff := cmp.Diff([]string{"Name", "npsp__RequireTotalMatch__c", "npsp__Batch_Description__c", "npsp__Expected_Count_of_Gifts__c"}, selectedValues(ed.Snapshot())); diff != "" {
		t.Fatalf("move up mismatch (-want +got):\n%s", diff)
	}
	if err := ed.MoveDown("npsp__RequireTotalMatch__c"); err != nil {
		t.Fatalf("move down: %v", err)
	}
	if diff := cmp.Diff(original, selectedValues(ed.Snapshot())); diff != "" {
		t.Fatalf("move up then down should restore order (-want +got):\n%s", diff)
	}

	if err := ed.MoveUp("Name"); err != nil {
		t.Fatalf("move up at boundary: %v", err)
	}
	if err := ed.MoveDown("npsp__Expected_Count_of_Gifts__c"); err != nil {
		t.Fatalf("move down at boundary: %v", err)
	}
	if diff := cmp.Diff(original, selectedValues(ed.Snapshot())); diff != "" {
		t.Fatalf("boundary moves must be no-ops (-want +got):\n%s", diff)
	}

	var invalid *editor.InvalidKeyError
	if err := ed.MoveDown("Unknown__c"); !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidKeyError, got %v", err)
	}
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	ed := editor.New()
	err := ed.Initialize([]model.AvailableField{
		{Value: "Name", Label: "Name"},
		{Value: "Method", Label: "Method", PicklistOptions: []model.PicklistOption{{Label: "Cash", Value: "Cash"}}},
	})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := ed.Toggle("Method"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	snapshot := ed.Snapshot()
	snapshot[1].PicklistOptions[0].Label = "mutated"
	snapshot[0].Label = "mutated"

	fresh := ed.Snapshot()
	if fresh[0].Label != "Name" || fresh[1].PicklistOptions[0].Label != "Cash" {
		t.Fatalf("snapshot mutation leaked into editor state: %+v", fresh)
	}
}

func TestLock_RejectsMutations(t *testing.T) {
	ed := initialised(t)
	ed.Lock()

	if err := ed.Toggle("npsp__Batch_Description__c"); !errors.Is(err, editor.ErrLocked) {
		t.Fatalf("toggle: expected ErrLocked, got %v", err)
	}
	if err := ed.MoveUp("Name"); !errors.Is(err, editor.ErrLocked) {
		t.Fatalf("move: expected ErrLocked, got %v", err)
	}
	if err := ed.SetSelected(nil); !errors.Is(err, editor.ErrLocked) {
		t.Fatalf("set selected: expected ErrLocked, got %v", err)
	}

	ed.Unlock()
	if err := ed.Toggle("npsp__Batch_Description__c"); err != nil {
		t.Fatalf("toggle after unlock: %v", err)
	}
}

func TestLoad(t *testing.T) {
	ed := editor.New()
	if err := ed.Load(context.Background(), testsupport.StaticCatalog{Fields: batchFields()}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ed.Initialized() {
		t.Fatalf("editor should be initialised after load")
	}

	failing := editor.New()
	err := failing.Load(context.Background(), testsupport.StaticCatalog{Err: errors.New("describe unavailable")})
	var fetchErr *remote.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if failing.Initialized() {
		t.Fatalf("failed load must leave the editor uninitialised")
	}
}

func TestGoToTab(t *testing.T) {
	got := editor.New().GoToTab("formFields")
	if diff := cmp.Diff(editor.TabNavigation{TabValue: "formFields"}, got); diff != "" {
		t.Fatalf("tab navigation mismatch (-want +got):\n%s", diff)
	}
}
