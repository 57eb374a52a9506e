package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-giftentry/pkg/source"
)

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{
		"templates/gift.yaml": {Data: []byte("name: gift")},
	}
	l := New(source.NewLoaderOptions(source.WithFileSystem(files)))

	data, err := l.Load(context.Background(), source.FromFS("templates/gift.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != "name: gift" {
		t.Fatalf("unexpected payload %q", data)
	}
}

func TestLoader_HTTPDisabledByDefault(t *testing.T) {
	l := New(source.NewLoaderOptions())
	src, err := source.FromURL("https://example.com/templates/gift")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if _, err := l.Load(context.Background(), src); err == nil {
		t.Fatalf("expected http to be disabled")
	}
}

func TestLoader_HTTPSendsHeadersAndReportsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	l := New(source.NewLoaderOptions(
		source.WithHTTPClient(server.Client()),
		source.WithHeader("Authorization", "Bearer token"),
	))

	src, _ := source.FromURL(server.URL + "/ok")
	data, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Fatalf("unexpected payload %q", data)
	}

	missing, _ := source.FromURL(server.URL + "/missing")
	_, err = l.Load(context.Background(), missing)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}
}
