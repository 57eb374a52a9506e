package tui

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-set/v2"

	"github.com/goliatone/go-giftentry/pkg/editor"
	"github.com/goliatone/go-giftentry/pkg/model"
)

const (
	actionDone     = "Done"
	actionMoveUp   = "Move up"
	actionMoveDown = "Move down"
)

// SelectionEditor is the subset of *editor.Editor the builder drives.
type SelectionEditor interface {
	Available() []model.AvailableField
	Snapshot() []model.SelectedField
	Toggle(key string) error
	MoveUp(key string) error
	MoveDown(key string) error
	IsRequired(key string) bool
}

var _ SelectionEditor = (*editor.Editor)(nil)

// Builder walks an administrator through choosing and ordering batch header
// fields.
type Builder struct {
	driver PromptDriver
}

// NewBuilder constructs a Builder. A nil driver uses the survey driver.
func NewBuilder(driver PromptDriver) *Builder {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Builder{driver: driver}
}

// Run prompts for the selection, then for reordering, and returns the final
// snapshot. Required fields are always kept.
func (b *Builder) Run(ctx context.Context, ed SelectionEditor) ([]model.SelectedField, error) {
	if err := b.chooseFields(ctx, ed); err != nil {
		return nil, err
	}
	if err := b.reorder(ctx, ed); err != nil {
		return nil, err
	}
	return ed.Snapshot(), nil
}

func (b *Builder) chooseFields(ctx context.Context, ed SelectionEditor) error {
	available := ed.Available()
	options := make([]string, 0, len(available))
	keys := make([]string, 0, len(available))
	var defaults []int
	for _, field := range available {
		if ed.IsRequired(field.Value) {
			continue
		}
		if field.Checked {
			defaults = append(defaults, len(options))
		}
		options = append(options, fmt.Sprintf("%s (%s)", field.Label, field.Value))
		keys = append(keys, field.Value)
	}
	if len(options) == 0 {
		return nil
	}

	chosen, err := b.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Batch header fields",
		Options:  options,
		Defaults: defaults,
		Help:     "Required fields are always included.",
	})
	if err != nil {
		return err
	}

	want := set.New[string](len(chosen))
	for _, idx := range chosen {
		if idx >= 0 && idx < len(keys) {
			want.Insert(keys[idx])
		}
	}
	current := set.New[string](len(available))
	for _, field := range ed.Snapshot() {
		current.Insert(field.Value)
	}

	for _, key := range keys {
		if want.Contains(key) != current.Contains(key) {
			if err := ed.Toggle(key); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Builder) reorder(ctx context.Context, ed SelectionEditor) error {
	for {
		selected := ed.Snapshot()
		if len(selected) < 2 {
			return nil
		}
		options := make([]string, 0, len(selected)+1)
		for idx, field := range selected {
			options = append(options, fmt.Sprintf("%d. %s", idx+1, field.Label))
		}
		options = append(options, actionDone)

		idx, err := b.driver.Select(ctx, SelectConfig{
			Message:      "Pick a field to move",
			Options:      options,
			DefaultIndex: len(options) - 1,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(selected) {
			return nil
		}

		moves := []string{actionMoveUp, actionMoveDown, actionDone}
		move, err := b.driver.Select(ctx, SelectConfig{Message: selected[idx].Label, Options: moves})
		if err != nil {
			return err
		}
		switch moves[clamp(move, len(moves))] {
		case actionMoveUp:
			err = ed.MoveUp(selected[idx].Value)
		case actionMoveDown:
			err = ed.MoveDown(selected[idx].Value)
		}
		if err != nil {
			return err
		}
	}
}

func clamp(idx, n int) int {
	if idx < 0 || idx >= n {
		return n - 1
	}
	return idx
}
