package widgets

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-giftentry/pkg/model"
)

func TestWidgetKindFor_TotalOverDataTypes(t *testing.T) {
	for _, dataType := range model.DataTypes() {
		kind, ok := WidgetKindFor(dataType)
		if !ok || kind == "" {
			t.Fatalf("data type %s has no widget kind", dataType)
		}
	}

	if _, ok := WidgetKindFor(model.DataType("REFERENCE")); ok {
		t.Fatalf("unknown data type should not resolve")
	}
}

func TestWidgetKindFor_Builtins(t *testing.T) {
	cases := []struct {
		dataType model.DataType
		expect   string
	}{
		{model.DataTypeBoolean, WidgetCheckbox},
		{model.DataTypeCurrency, WidgetNumber},
		{model.DataTypeDate, WidgetDate},
		{model.DataTypeDateTime, WidgetDateTimeLocal},
		{model.DataTypeEmail, WidgetEmail},
		{model.DataTypeNumber, WidgetNumber},
		{model.DataTypePercent, WidgetNumber},
		{model.DataTypeString, WidgetText},
		{model.DataTypePhone, WidgetTel},
		{model.DataTypeText, WidgetText},
		{model.DataTypeTime, WidgetTime},
		{model.DataTypeURL, WidgetURL},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(string(tc.dataType), func(t *testing.T) {
			t.Parallel()
			got, _ := WidgetKindFor(tc.dataType)
			if got != tc.expect {
				t.Fatalf("widget for %s: want %q, got %q", tc.dataType, tc.expect, got)
			}
		})
	}
}

func TestNumericFormatFor_OnlyPercent(t *testing.T) {
	for _, dataType := range model.DataTypes() {
		format, ok := NumericFormatFor(dataType)
		if dataType == model.DataTypePercent {
			if !ok || format != FormatPercentFixed {
				t.Fatalf("percent format: want %q, got %q (ok=%v)", FormatPercentFixed, format, ok)
			}
			continue
		}
		if ok {
			t.Fatalf("data type %s should not carry a number format, got %q", dataType, format)
		}
	}
}

func TestRegistry_OverrideWins(t *testing.T) {
	reg := NewRegistry()
	reg.Register(model.DataTypeBoolean, "toggle", "")
	reg.Register(model.DataTypeCurrency, "currency", "currency")

	if got, _ := reg.Resolve(model.DataTypeBoolean); got != "toggle" {
		t.Fatalf("override should win, got %q", got)
	}
	if got, ok := reg.NumberFormat(model.DataTypeCurrency); !ok || got != "currency" {
		t.Fatalf("override format: got %q (ok=%v)", got, ok)
	}
	if got, _ := reg.Resolve(model.DataTypeEmail); got != WidgetEmail {
		t.Fatalf("builtin should still resolve, got %q", got)
	}
}

func TestRegistry_DecorateTemplate(t *testing.T) {
	reg := NewRegistry()
	template := model.FormTemplate{
		Layout: model.Layout{
			Sections: []model.Section{
				{
					Label: "Gift",
					Elements: []model.Element{
						{DevName: "Donation_Amount", DataType: model.DataTypeCurrency},
						{DevName: "Tax_Rate", DataType: model.DataTypePercent},
						{DevName: "Payment_Method", DataType: model.DataTypeString, Options: []model.PicklistOption{{Label: "Cash", Value: "Cash"}}},
						{DevName: "Notes", DataType: model.DataTypeText, WidgetKind: "textarea"},
					},
				},
			},
		},
	}

	if err := reg.Decorate(&template); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	got := template.Elements()
	want := []model.Element{
		{DevName: "Donation_Amount", DataType: model.DataTypeCurrency, WidgetKind: WidgetNumber},
		{DevName: "Tax_Rate", DataType: model.DataTypePercent, WidgetKind: WidgetNumber, NumberFormat: FormatPercentFixed},
		{DevName: "Payment_Method", DataType: model.DataTypeString, Options: []model.PicklistOption{{Label: "Cash", Value: "Cash"}}, WidgetKind: WidgetCombobox},
		{DevName: "Notes", DataType: model.DataTypeText, WidgetKind: "textarea"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decorated elements mismatch (-want +got):\n%s", diff)
	}
}
