package tui

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-giftentry/pkg/editor"
	"github.com/goliatone/go-giftentry/pkg/model"
)

func TestBuilder_SelectsAndReorders(t *testing.T) {
	ed := editor.New()
	err := ed.Initialize([]model.AvailableField{
		{Value: "Name", Label: "Name"},
		{Value: "Description", Label: "Description"},
		{Value: "Expected_Count", Label: "Expected Count"},
	})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}

	// Options exclude Name: [Description, Expected Count].
	// Reorder: pick "3. Expected Count", move up, then Done.
	driver := &stubDriver{
		multiIdx:  [][]int{{0, 1}},
		selectIdx: []int{2, 0, 3},
	}
	selected, err := NewBuilder(driver).Run(context.Background(), ed)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var got []string
	for _, field := range selected {
		got = append(got, field.Value)
	}
	if diff := cmp.Diff([]string{"Name", "Expected_Count", "Description"}, got); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_DeselectsUncheckedFields(t *testing.T) {
	ed := editor.New()
	if err := ed.SetSelected([]model.SelectedField{{Value: "Description", Label: "Description"}}); err != nil {
		t.Fatalf("set selected: %v", err)
	}
	if err := ed.Initialize([]model.AvailableField{
		{Value: "Name", Label: "Name"},
		{Value: "Description", Label: "Description"},
	}); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	driver := &stubDriver{multiIdx: [][]int{{}}}
	selected, err := NewBuilder(driver).Run(context.Background(), ed)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(selected) != 1 || selected[0].Value != "Name" {
		t.Fatalf("expected only the required field, got %+v", selected)
	}
}
