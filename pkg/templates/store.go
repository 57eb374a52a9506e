package templates

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-giftentry/pkg/model"
	"github.com/goliatone/go-giftentry/pkg/remote"
)

// Store keeps parsed render wrappers keyed by template name. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	templates map[string]model.RenderWrapper
}

var _ remote.TemplateService = (*Store)(nil)

// LoadFS walks the provided filesystem and parses JSON/YAML render wrapper
// documents. When fsys is nil or no documents are present, the store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{templates: make(map[string]model.RenderWrapper)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isTemplateFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("templates: read %s: %w", path, err)
		}
		raw, err := parseWrapper(data, path)
		if err != nil {
			return err
		}
		wrapper, err := normaliseWrapper(raw, path)
		if err != nil {
			return err
		}
		name := wrapper.FormTemplate.Name
		if _, exists := store.templates[name]; exists {
			return fmt.Errorf("templates: duplicate template %q (file %s)", name, path)
		}
		store.templates[name] = wrapper
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// RetrieveFormTemplate returns the named render wrapper.
func (s *Store) RetrieveFormTemplate(ctx context.Context, templateName string) (model.RenderWrapper, error) {
	if err := ctx.Err(); err != nil {
		return model.RenderWrapper{}, remote.NewFetchError("retrieve template", templateName, err)
	}
	if s == nil {
		return model.RenderWrapper{}, remote.NewFetchError("retrieve template", templateName, remote.ErrNotReady)
	}
	wrapper, ok := s.templates[strings.TrimSpace(templateName)]
	if !ok {
		return model.RenderWrapper{}, remote.NewFetchError("retrieve template", templateName, fmt.Errorf("template not found"))
	}
	return wrapper, nil
}

// Names returns the stored template names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any templates.
func (s *Store) Empty() bool {
	return s == nil || len(s.templates) == 0
}

func isTemplateFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
