// Package form ties the mapping registry and the save orchestrator into a
// single entry session: load the template header and sections, then save the
// collected values and report where to navigate next.
package form

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-giftentry/pkg/mapping"
	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/orchestrator"
	"github.com/goliatone/go-giftentry/pkg/picklist"
	"github.com/goliatone/go-giftentry/pkg/remote"
)

// ActionView is the navigation action used after a successful save.
const ActionView = "view"

// ErrNotReady is returned by Save before Load succeeded.
var ErrNotReady = errors.New("form: session not loaded")

// RecordPage is the navigation target for a created record.
type RecordPage struct {
	RecordID string `json:"recordId"`
	Action   string `json:"actionName"`
}

// Option customises a Session.
type Option func(*Session)

// WithLogger sets the logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPicklists resolves options for picklist elements from describe metadata
// of object after the template loads.
func WithPicklists(describe remote.DescribeService, object, recordTypeID string) Option {
	return func(s *Session) {
		s.describe = describe
		s.describeObject = object
		s.recordTypeID = recordTypeID
	}
}

// Session is one rendering of an entry form.
type Session struct {
	registry     *mapping.Registry
	orchestrator *orchestrator.Orchestrator
	logger       *zap.Logger

	describe       remote.DescribeService
	describeObject string
	recordTypeID   string

	mu       sync.RWMutex
	ready    bool
	template model.FormTemplate
	// submissionKey is reused by every save attempt until one succeeds.
	submissionKey string
	newKey        func() string
}

// NewSession wires a registry and an orchestrator. The orchestrator should
// have been built with the same registry.
func NewSession(registry *mapping.Registry, orch *orchestrator.Orchestrator, options ...Option) *Session {
	s := &Session{
		registry:     registry,
		orchestrator: orch,
		logger:       zap.NewNop(),
		newKey:       uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Load retrieves the template and resolves picklists. On any failure Ready
// stays false and the *remote.FetchError is returned for the caller to report.
func (s *Session) Load(ctx context.Context) error {
	s.setTemplate(model.FormTemplate{}, false)

	if err := s.registry.Load(ctx); err != nil {
		return err
	}
	template, err := s.registry.Template()
	if err != nil {
		return err
	}
	if s.describe != nil {
		if err := picklist.ResolveTemplate(ctx, &template, s.describe, s.registry, s.describeObject, s.recordTypeID); err != nil {
			s.logger.Error("picklist resolution failed", zap.Error(err))
			return err
		}
	}
	s.setTemplate(template, true)
	s.logger.Info("form template loaded",
		zap.String("name", template.Name),
		zap.String("version", template.Layout.Version),
		zap.Int("sections", len(template.Layout.Sections)),
	)
	return nil
}

func (s *Session) setTemplate(template model.FormTemplate, ready bool) {
	s.mu.Lock()
	s.template = template
	s.ready = ready
	s.mu.Unlock()
}

func (s *Session) current() model.FormTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.template
}

// Ready reports whether the last Load completed.
func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready && s.registry.Ready()
}

// Name returns the template name.
func (s *Session) Name() string { return s.current().Name }

// Description returns the template description.
func (s *Session) Description() string { return s.current().Description }

// Version returns the layout version.
func (s *Session) Version() string { return s.current().Layout.Version }

// Sections returns the decorated layout sections.
func (s *Session) Sections() []model.Section { return s.current().Layout.Sections }

// Template returns the loaded template.
func (s *Session) Template() model.FormTemplate { return s.current() }

// Save submits the section values and returns the page of the created record.
// Retries after a failed save carry the same idempotency key unless ctx
// already holds one; a successful save starts a new key.
func (s *Session) Save(ctx context.Context, sections []model.SectionValues) (RecordPage, error) {
	if !s.Ready() {
		return RecordPage{}, ErrNotReady
	}
	if _, ok := remote.IdempotencyKey(ctx); !ok {
		ctx = remote.WithIdempotencyKey(ctx, s.attemptKey())
	}
	id, err := s.orchestrator.Save(ctx, sections)
	if err != nil {
		return RecordPage{}, err
	}
	s.mu.Lock()
	s.submissionKey = ""
	s.mu.Unlock()
	return RecordPage{RecordID: id, Action: ActionView}, nil
}

func (s *Session) attemptKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submissionKey == "" {
		s.submissionKey = s.newKey()
	}
	return s.submissionKey
}
