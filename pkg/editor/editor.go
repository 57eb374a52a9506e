package editor

import (
	"context"
	"sort"
	"sync"

	"github.com/hashicorp/go-set/v2"
	"github.com/mohae/deepcopy"
	"go.uber.org/zap"

	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/remote"
)

// TabNavigation asks the host to switch to another builder tab.
type TabNavigation struct {
	TabValue string `json:"tabValue"`
}

// Editor keeps the available batch fields and the ordered selection.
type Editor struct {
	requiredOrder []string
	required      *set.Set[string]
	logger        *zap.Logger

	mu          sync.RWMutex
	initialized bool
	locked      bool
	available   []model.AvailableField
	selected    []model.SelectedField
}

// New constructs an Editor with DefaultRequiredKeys unless overridden.
func New(options ...Option) *Editor {
	e := &Editor{
		requiredOrder: dedupe(DefaultRequiredKeys),
		logger:        zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	e.required = set.From(e.requiredOrder)
	return e
}

// RequiredKeys returns the required keys in declaration order.
func (e *Editor) RequiredKeys() []string {
	return append([]string(nil), e.requiredOrder...)
}

// IsRequired reports whether key is one of the required keys.
func (e *Editor) IsRequired(key string) bool {
	return e.required.Contains(key)
}

// SetSelected seeds the selection, typically from a stored template's batch
// header fields. Call it before Initialize so required keys and checkbox
// state are reconciled against it.
func (e *Editor) SetSelected(fields []model.SelectedField) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.locked {
		return ErrLocked
	}
	e.selected = deepcopy.Copy(fields).([]model.SelectedField)
	if e.initialized {
		e.markChecked()
	}
	return nil
}

// Load fetches the batch field catalog and initialises the editor with it.
func (e *Editor) Load(ctx context.Context, catalog remote.CatalogService) error {
	if catalog == nil {
		return remote.NewFetchError("batch fields", "", ErrNotInitialized)
	}
	fields, err := catalog.BatchFields(ctx)
	if err != nil {
		e.logger.Error("batch field retrieval failed", zap.Error(err))
		return remote.NewFetchError("batch fields", "", err)
	}
	return e.Initialize(fields)
}

// Initialize sorts available by label (stable, case-sensitive), locks the
// required keys and appends any required key missing from the selection in
// declaration order. A required key absent from available is an
// *InvalidKeyError and leaves the editor uninitialised.
func (e *Editor) Initialize(available []model.AvailableField) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.locked {
		return ErrLocked
	}

	sorted := SortByLabel(available)
	for idx := range sorted {
		if e.required.Contains(sorted[idx].Value) {
			sorted[idx].IsRequired = true
			sorted[idx].IsRequiredFieldDisabled = true
		}
	}

	selected := deepcopy.Copy(e.selected).([]model.SelectedField)
	for idx := range selected {
		if e.required.Contains(selected[idx].Value) {
			selected[idx].Required = true
			selected[idx].IsRequiredFieldDisabled = true
		}
	}

	for _, key := range e.requiredOrder {
		if indexOfSelected(selected, key) >= 0 {
			continue
		}
		idx := indexOfAvailable(sorted, key)
		if idx < 0 {
			return &InvalidKeyError{Key: key}
		}
		selected = append(selected, deriveSelected(sorted[idx]))
	}

	e.available = sorted
	e.selected = selected
	e.initialized = true
	e.markChecked()

	e.logger.Debug("selection editor initialised",
		zap.Int("available", len(sorted)),
		zap.Int("selected", len(selected)),
	)
	return nil
}

// Toggle removes key from the selection when present, otherwise appends a
// field derived from the matching available entry.
func (e *Editor) Toggle(key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkMutable(); err != nil {
		return err
	}

	availableIdx := indexOfAvailable(e.available, key)
	if idx := indexOfSelected(e.selected, key); idx >= 0 {
		if e.required.Contains(key) {
			return ErrRequiredField
		}
		e.selected = append(e.selected[:idx:idx], e.selected[idx+1:]...)
		if availableIdx >= 0 {
			e.available[availableIdx].Checked = false
		}
		return nil
	}

	if availableIdx < 0 {
		return &InvalidKeyError{Key: key}
	}
	e.selected = append(e.selected, deriveSelected(e.available[availableIdx]))
	e.available[availableIdx].Checked = true
	return nil
}

// MoveUp swaps key with its predecessor. It is a no-op for the first entry.
func (e *Editor) MoveUp(key string) error {
	return e.move(key, -1)
}

// MoveDown swaps key with its successor. It is a no-op for the last entry.
func (e *Editor) MoveDown(key string) error {
	return e.move(key, 1)
}

func (e *Editor) move(key string, delta int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkMutable(); err != nil {
		return err
	}
	idx := indexOfSelected(e.selected, key)
	if idx < 0 {
		return &InvalidKeyError{Key: key}
	}
	target := idx + delta
	if target < 0 || target >= len(e.selected) {
		return nil
	}
	e.selected[idx], e.selected[target] = e.selected[target], e.selected[idx]
	return nil
}

// Snapshot returns a deep copy of the selected sequence in display order.
func (e *Editor) Snapshot() []model.SelectedField {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if len(e.selected) == 0 {
		return []model.SelectedField{}
	}
	return deepcopy.Copy(e.selected).([]model.SelectedField)
}

// Available returns a deep copy of the sorted catalog with Checked flags.
func (e *Editor) Available() []model.AvailableField {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if len(e.available) == 0 {
		return []model.AvailableField{}
	}
	return deepcopy.Copy(e.available).([]model.AvailableField)
}

// Initialized reports whether the catalog has been loaded.
func (e *Editor) Initialized() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.initialized
}

// GoToTab builds the navigation request for another builder tab.
func (e *Editor) GoToTab(tabValue string) TabNavigation {
	return TabNavigation{TabValue: tabValue}
}

// Lock freezes the selection. Mutations return ErrLocked until Unlock.
func (e *Editor) Lock() {
	e.mu.Lock()
	e.locked = true
	e.mu.Unlock()
}

// Unlock releases a Lock.
func (e *Editor) Unlock() {
	e.mu.Lock()
	e.locked = false
	e.mu.Unlock()
}

// Locked reports whether the selection is frozen.
func (e *Editor) Locked() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.locked
}

func (e *Editor) checkMutable() error {
	if e.locked {
		return ErrLocked
	}
	if !e.initialized {
		return ErrNotInitialized
	}
	return nil
}

// markChecked mirrors the selection onto the catalog checkboxes.
func (e *Editor) markChecked() {
	chosen := set.New[string](len(e.selected))
	for _, field := range e.selected {
		chosen.Insert(field.Value)
	}
	for idx := range e.available {
		e.available[idx].Checked = chosen.Contains(e.available[idx].Value)
	}
}

// SortByLabel returns a copy of fields ordered by label, ascending, using a
// stable, case-sensitive comparison.
func SortByLabel(fields []model.AvailableField) []model.AvailableField {
	out := make([]model.AvailableField, len(fields))
	for idx, field := range fields {
		out[idx] = field
		out[idx].PicklistOptions = append([]model.PicklistOption(nil), field.PicklistOptions...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func deriveSelected(field model.AvailableField) model.SelectedField {
	return model.SelectedField{
		Label:                   field.Label,
		Value:                   field.Value,
		Required:                field.IsRequired,
		IsRequiredFieldDisabled: field.IsRequiredFieldDisabled,
		AllowDefaultValue:       false,
		DefaultValue:            nil,
		DataType:                field.DataType,
		PicklistOptions:         append([]model.PicklistOption(nil), field.PicklistOptions...),
	}
}

func indexOfSelected(fields []model.SelectedField, key string) int {
	for idx, field := range fields {
		if field.Value == key {
			return idx
		}
	}
	return -1
}

func indexOfAvailable(fields []model.AvailableField, key string) int {
	for idx, field := range fields {
		if field.Value == key {
			return idx
		}
	}
	return -1
}
