package records

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/remote"
)

// IdempotencyHeader carries the submission key. The key comes from
// remote.WithIdempotencyKey on the request context, so retries that reuse the
// context key can be de-duplicated by the endpoint. Without one every request
// gets a fresh key.
const IdempotencyHeader = "Idempotency-Key"

type saveRequest struct {
	DIRecord   model.RecordPayload `json:"diRecord"`
	WidgetData string              `json:"widgetData"`
}

type saveResponse struct {
	ID string `json:"id"`
}

// StatusError reports a non-2xx response from the record endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("records: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("records: unexpected status %d: %s", e.StatusCode, e.Body)
}

// HTTPOption customises an HTTPService.
type HTTPOption func(*HTTPService)

// WithHTTPClient injects the client used for requests.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPService) {
		if client != nil {
			s.client = client
		}
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(name, value string) HTTPOption {
	return func(s *HTTPService) {
		s.headers[name] = value
	}
}

// WithTimeout caps each request.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(s *HTTPService) {
		s.timeout = timeout
	}
}

// WithKeyGenerator overrides the generator used when the context carries no
// idempotency key.
func WithKeyGenerator(next func() string) HTTPOption {
	return func(s *HTTPService) {
		if next != nil {
			s.newKey = next
		}
	}
}

// WithLogger sets the logger. Nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) HTTPOption {
	return func(s *HTTPService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// HTTPService POSTs {"diRecord": payload, "widgetData": "..."} to an endpoint
// and expects {"id": "..."} back.
type HTTPService struct {
	endpoint string
	client   *http.Client
	headers  map[string]string
	timeout  time.Duration
	newKey   func() string
	logger   *zap.Logger
}

var _ remote.RecordCreateService = (*HTTPService)(nil)

// NewHTTPService constructs an HTTPService for endpoint.
func NewHTTPService(endpoint string, options ...HTTPOption) (*HTTPService, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, errors.New("records: endpoint is required")
	}
	s := &HTTPService{
		endpoint: trimmed,
		client:   http.DefaultClient,
		headers:  make(map[string]string),
		newKey:   func() string { return uuid.NewString() },
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Save submits the record and returns the created record id.
func (s *HTTPService) Save(ctx context.Context, payload model.RecordPayload, widgetData string) (string, error) {
	body, err := json.Marshal(saveRequest{DIRecord: payload, WidgetData: widgetData})
	if err != nil {
		return "", fmt.Errorf("records: encode request: %w", err)
	}

	reqCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("records: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	key, ok := remote.IdempotencyKey(ctx)
	if !ok {
		key = s.newKey()
	}
	req.Header.Set(IdempotencyHeader, key)
	for name, value := range s.headers {
		req.Header.Set(name, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("records: post: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("records: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	var decoded saveResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", fmt.Errorf("records: decode response: %w", err)
	}
	if strings.TrimSpace(decoded.ID) == "" {
		return "", errors.New("records: response did not include a record id")
	}

	s.logger.Debug("record created",
		zap.String("record_id", decoded.ID),
		zap.String("idempotency_key", key),
	)
	return decoded.ID, nil
}
