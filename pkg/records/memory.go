package records

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mohae/deepcopy"

	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/remote"
)

// Record is a stored Data Import submission.
type Record struct {
	ID         string
	Payload    model.RecordPayload
	WidgetData string
}

// Memory is an in-process record-create service.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
	order   []string
	failure error
}

var _ remote.RecordCreateService = (*Memory)(nil)

// NewMemory constructs an empty Memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]Record)}
}

// FailWith makes every subsequent Save return err. Pass nil to recover.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	m.failure = err
	m.mu.Unlock()
}

// Save stores a copy of payload under a new UUID.
func (m *Memory) Save(ctx context.Context, payload model.RecordPayload, widgetData string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return "", m.failure
	}
	id := uuid.NewString()
	copied, _ := deepcopy.Copy(payload).(model.RecordPayload)
	m.records[id] = Record{ID: id, Payload: copied, WidgetData: widgetData}
	m.order = append(m.order, id)
	return id, nil
}

// Get returns a stored record.
func (m *Memory) Get(id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[id]
	if !ok {
		return Record{}, fmt.Errorf("records: record %q not found", id)
	}
	return record, nil
}

// All returns every stored record in creation order.
func (m *Memory) All() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.records[id])
	}
	return out
}
