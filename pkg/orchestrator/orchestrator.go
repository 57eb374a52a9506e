package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/remote"
)

// Registry resolves form field keys to field mappings. *mapping.Registry
// satisfies it.
type Registry interface {
	Lookup(key string) (model.FieldMapping, error)
}

// Locker freezes the selection editor during a save. *editor.Editor
// satisfies it. A lock already held when the save starts is left in place.
type Locker interface {
	Lock()
	Unlock()
	Locked() bool
}

// Orchestrator coordinates payload construction and record submission.
type Orchestrator struct {
	registry     Registry
	records      remote.RecordCreateService
	logger       *zap.Logger
	sanitizer    Sanitizer
	sanitizerSet bool
	lock         Locker

	mu       sync.Mutex
	inFlight bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if !o.sanitizerSet {
		o.sanitizer = DefaultSanitizer()
	}
	return o
}

// MergeSections folds section values into a single map in slice order; later
// sections win on key collisions.
func MergeSections(sections []model.SectionValues) (values, widgetValues model.Values) {
	values = model.Values{}
	widgetValues = model.Values{}
	for _, section := range sections {
		for key, value := range section.Values {
			values[key] = value
		}
		for key, value := range section.WidgetValues {
			widgetValues[key] = value
		}
	}
	return values, widgetValues
}

// BuildRecordPayload translates merged section values into a record payload
// keyed by each mapping's Data Import API name. Any key without a mapping
// aborts with a *mapping.NotFoundError and a nil payload; two keys writing the
// same Data Import field abort with a *DuplicateTargetError.
func (o *Orchestrator) BuildRecordPayload(sections []model.SectionValues) (model.RecordPayload, error) {
	payload, _, err := o.build(sections)
	return payload, err
}

func (o *Orchestrator) build(sections []model.SectionValues) (model.RecordPayload, model.Values, error) {
	if o.registry == nil {
		return nil, nil, ErrRegistryRequired
	}
	values, widgetValues := MergeSections(sections)

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// Keys are unique after the merge, but two keys may share a target field.
	payload := make(model.RecordPayload, len(values))
	writers := make(map[string]string, len(values))
	for _, key := range keys {
		mapping, err := o.registry.Lookup(key)
		if err != nil {
			o.logger.Warn("payload key has no field mapping",
				zap.String("key", key),
				zap.Error(err),
			)
			return nil, nil, err
		}
		if previous, taken := writers[mapping.SourceAPIName]; taken {
			return nil, nil, &DuplicateTargetError{Field: mapping.SourceAPIName, Keys: []string{previous, key}}
		}
		writers[mapping.SourceAPIName] = key
		payload[mapping.SourceAPIName] = o.sanitize(values[key])
	}
	return payload, widgetValues, nil
}

func (o *Orchestrator) sanitize(value any) any {
	text, ok := value.(string)
	if !ok || o.sanitizer == nil {
		return value
	}
	return o.sanitizer.Sanitize(text)
}

// Submit serialises widgetValues and hands the payload to the record-create
// service. Every failure is returned as a *remote.SaveError.
func (o *Orchestrator) Submit(ctx context.Context, payload model.RecordPayload, widgetValues model.Values) (string, error) {
	if o.records == nil {
		return "", &remote.SaveError{Err: ErrRecordServiceRequired}
	}
	if widgetValues == nil {
		widgetValues = model.Values{}
	}
	widgetData, err := json.Marshal(widgetValues)
	if err != nil {
		return "", &remote.SaveError{Err: fmt.Errorf("orchestrator: encode widget data: %w", err)}
	}

	id, err := o.records.Save(ctx, payload, string(widgetData))
	if err != nil {
		o.logger.Error("record save failed", zap.Error(err))
		return "", &remote.SaveError{Err: err}
	}
	o.logger.Info("record saved", zap.String("record_id", id), zap.Int("fields", len(payload)))
	return id, nil
}

// Save builds the payload from sections and submits it. Only one save runs at
// a time; a concurrent call returns ErrSaveInFlight. A configured editor lock
// is held for the duration.
func (o *Orchestrator) Save(ctx context.Context, sections []model.SectionValues) (string, error) {
	if !o.begin() {
		return "", ErrSaveInFlight
	}
	defer o.end()

	if o.lock != nil && !o.lock.Locked() {
		o.lock.Lock()
		defer o.lock.Unlock()
	}

	payload, widgetValues, err := o.build(sections)
	if err != nil {
		return "", err
	}
	return o.Submit(ctx, payload, widgetValues)
}

// Saving reports whether a save is in flight.
func (o *Orchestrator) Saving() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight
}

func (o *Orchestrator) begin() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inFlight {
		return false
	}
	o.inFlight = true
	return true
}

func (o *Orchestrator) end() {
	o.mu.Lock()
	o.inFlight = false
	o.mu.Unlock()
}
