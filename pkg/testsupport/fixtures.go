package testsupport

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sync"
	"testing"

	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/remote"
)

//go:embed testdata
var fixtures embed.FS

// SingleGiftTemplate is the name of the template shipped in the fixtures.
const SingleGiftTemplate = "Single Gift Entry Template"

// TemplatesFS exposes the template fixture directory as an fs.FS rooted at
// testdata/templates.
func TemplatesFS(t *testing.T) fs.FS {
	t.Helper()

	sub, err := fs.Sub(fixtures, "testdata/templates")
	if err != nil {
		t.Fatalf("templates fixture: %v", err)
	}
	return sub
}

// CatalogDocument returns the OpenAPI describe fixture.
func CatalogDocument(t *testing.T) []byte {
	t.Helper()

	data, err := fixtures.ReadFile("testdata/catalog/data_import.yaml")
	if err != nil {
		t.Fatalf("catalog fixture: %v", err)
	}
	return data
}

// StaticTemplates is an in-memory template service keyed by template name.
type StaticTemplates map[string]model.RenderWrapper

// RetrieveFormTemplate returns the stored wrapper or an error.
func (s StaticTemplates) RetrieveFormTemplate(_ context.Context, name string) (model.RenderWrapper, error) {
	wrapper, ok := s[name]
	if !ok {
		return model.RenderWrapper{}, fmt.Errorf("testsupport: template %q not found", name)
	}
	return wrapper, nil
}

// RecordCall captures a single record-create invocation.
type RecordCall struct {
	Payload        model.RecordPayload
	WidgetData     string
	IdempotencyKey string
}

// RecordService is a scripted record-create service. When Block is non-nil,
// Save waits until it is closed or the context ends.
type RecordService struct {
	mu    sync.Mutex
	ID    string
	Err   error
	Block chan struct{}
	Calls []RecordCall
}

// Save records the call and returns the scripted id or error.
func (s *RecordService) Save(ctx context.Context, payload model.RecordPayload, widgetData string) (string, error) {
	s.mu.Lock()
	key, _ := remote.IdempotencyKey(ctx)
	s.Calls = append(s.Calls, RecordCall{Payload: payload, WidgetData: widgetData, IdempotencyKey: key})
	block := s.Block
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.Err != nil {
		return "", s.Err
	}
	return s.ID, nil
}

// CallCount reports how many times Save ran.
func (s *RecordService) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

// LastCall returns the most recent Save invocation.
func (s *RecordService) LastCall(t *testing.T) RecordCall {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Calls) == 0 {
		t.Fatalf("record service was not called")
	}
	return s.Calls[len(s.Calls)-1]
}

// StaticCatalog is an in-memory catalog service.
type StaticCatalog struct {
	Fields []model.AvailableField
	Err    error
}

// BatchFields returns a copy of the scripted fields.
func (c StaticCatalog) BatchFields(context.Context) ([]model.AvailableField, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return append([]model.AvailableField(nil), c.Fields...), nil
}
