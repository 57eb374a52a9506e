package source

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader reads the raw bytes behind a Source.
type Loader interface {
	Load(ctx context.Context, src Source) ([]byte, error)
}

// LoaderOptions configures how a Loader resolves sources. HTTP stays disabled
// unless a client is injected or AllowHTTPFallback is set.
type LoaderOptions struct {
	// FileSystem backs KindFS sources.
	FileSystem fs.FS

	// HTTPClient enables KindURL sources with caller-controlled transport
	// settings.
	HTTPClient *http.Client

	// AllowHTTPFallback enables URL sources using a default client when no
	// HTTPClient is supplied.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration

	// Headers are added to every HTTP request (for example Authorization).
	Headers map[string]string
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for KindFS sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote documents.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading with a default client and timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithHeader adds a header sent with every HTTP request.
func WithHeader(name, value string) LoaderOption {
	return func(opts *LoaderOptions) {
		if opts.Headers == nil {
			opts.Headers = make(map[string]string)
		}
		opts.Headers[name] = value
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
