package templates

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/goliatone/go-giftentry/internal/source/loader"
	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/remote"
	"github.com/goliatone/go-giftentry/pkg/source"
)

// HTTPService fetches render wrappers from GET {baseURL}/templates/{name}.
type HTTPService struct {
	baseURL string
	loader  source.Loader
}

var _ remote.TemplateService = (*HTTPService)(nil)

// NewHTTPService builds an HTTP-backed template service. HTTP loading is
// enabled with the default client unless options inject one.
func NewHTTPService(baseURL string, options ...source.LoaderOption) (*HTTPService, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("templates: base URL is required")
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return nil, err
	}
	opts := source.NewLoaderOptions(options...)
	if opts.HTTPClient == nil {
		opts.AllowHTTPFallback = true
	}
	return &HTTPService{baseURL: trimmed, loader: loader.New(opts)}, nil
}

// RetrieveFormTemplate downloads and normalises the named render wrapper.
func (s *HTTPService) RetrieveFormTemplate(ctx context.Context, templateName string) (model.RenderWrapper, error) {
	name := strings.TrimSpace(templateName)
	if name == "" {
		return model.RenderWrapper{}, remote.NewFetchError("retrieve template", templateName, errors.New("template name is required"))
	}
	src, err := source.FromURL(s.baseURL + "/templates/" + url.PathEscape(name))
	if err != nil {
		return model.RenderWrapper{}, remote.NewFetchError("retrieve template", name, err)
	}
	data, err := s.loader.Load(ctx, src)
	if err != nil {
		return model.RenderWrapper{}, remote.NewFetchError("retrieve template", name, err)
	}
	raw, err := parseWrapper(data, src.Location())
	if err != nil {
		return model.RenderWrapper{}, remote.NewFetchError("retrieve template", name, err)
	}
	wrapper, err := normaliseWrapper(raw, src.Location())
	if err != nil {
		return model.RenderWrapper{}, remote.NewFetchError("retrieve template", name, err)
	}
	return wrapper, nil
}
