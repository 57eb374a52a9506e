// Package picklist implements the picklist form field: it loads the options
// for an object field through the describe service and validates the chosen
// value against them.
package picklist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/remote"
)

// ErrDescribeRequired is returned by Load without a describe service.
var ErrDescribeRequired = errors.New("picklist: describe service is required")

// ValueChange is raised when the field value changes.
type ValueChange struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Field is a single picklist input bound to Object.Field.
type Field struct {
	ObjectName string
	FieldName  string
	Label      string
	Required   bool

	// OnChange receives every ValueChange raised by SetValue.
	OnChange func(ValueChange)
	Logger   *zap.Logger

	mu      sync.RWMutex
	value   string
	options []model.PicklistOption
	loaded  bool
}

// FullFieldAPIName returns the qualified "Object.Field" name.
func (f *Field) FullFieldAPIName() string {
	return f.ObjectName + "." + f.FieldName
}

// Load fetches the options for the field and record type. Failures are
// returned as *remote.FetchError and leave the previous options untouched.
func (f *Field) Load(ctx context.Context, describe remote.DescribeService, recordTypeID string) error {
	if describe == nil {
		return remote.NewFetchError("picklist values", f.FullFieldAPIName(), ErrDescribeRequired)
	}
	options, err := describe.PicklistValues(ctx, f.FullFieldAPIName(), recordTypeID)
	if err != nil {
		f.logger().Error("picklist values retrieval failed",
			zap.String("field", f.FullFieldAPIName()),
			zap.String("record_type_id", recordTypeID),
			zap.Error(err),
		)
		return remote.NewFetchError("picklist values", f.FullFieldAPIName(), err)
	}

	f.mu.Lock()
	f.options = append([]model.PicklistOption(nil), options...)
	f.loaded = true
	f.mu.Unlock()
	return nil
}

// Options returns the loaded options.
func (f *Field) Options() []model.PicklistOption {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]model.PicklistOption(nil), f.options...)
}

// Value returns the current value.
func (f *Field) Value() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value
}

// SetValue stores value and raises a ValueChange.
func (f *Field) SetValue(value string) ValueChange {
	f.mu.Lock()
	f.value = value
	f.mu.Unlock()

	event := ValueChange{Field: f.FullFieldAPIName(), Value: value}
	if f.OnChange != nil {
		f.OnChange(event)
	}
	return event
}

// CheckValidity reports whether the current value is acceptable: present when
// required, and one of the loaded options when set.
func (f *Field) CheckValidity() bool {
	return f.validationMessage() == ""
}

// ReportValidity returns the validation message for the current value, or an
// empty string when valid.
func (f *Field) ReportValidity() string {
	return f.validationMessage()
}

func (f *Field) validationMessage() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	label := f.Label
	if label == "" {
		label = f.FieldName
	}
	if strings.TrimSpace(f.value) == "" {
		if f.Required {
			return fmt.Sprintf("%s: complete this field.", label)
		}
		return ""
	}
	if !f.loaded {
		return ""
	}
	for _, option := range f.options {
		if option.Value == f.value {
			return ""
		}
	}
	return fmt.Sprintf("%s: %q is not a valid option.", label, f.value)
}

func (f *Field) logger() *zap.Logger {
	if f.Logger == nil {
		return zap.NewNop()
	}
	return f.Logger
}
