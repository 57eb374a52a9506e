package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-giftentry/pkg/source"
)

// Loader implements source.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	headers   map[string]string
}

var _ source.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options source.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	headers := make(map[string]string, len(options.Headers))
	for key, value := range options.Headers {
		headers[key] = value
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		headers:   headers,
	}
}

// Load fetches the raw bytes for the provided source.
func (l *Loader) Load(ctx context.Context, src source.Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("source loader: source is nil")
	}

	switch src.Kind() {
	case source.KindFile:
		return loadFile(ctx, src.Location())
	case source.KindFS:
		return loadFromFS(ctx, l.fs, src.Location())
	case source.KindURL:
		if !l.allowHTTP {
			return nil, errors.New("source loader: http support disabled")
		}
		return loadHTTP(ctx, l.http, src.Location(), l.timeout, l.headers)
	default:
		return nil, errors.New("source loader: unsupported source kind")
	}
}
