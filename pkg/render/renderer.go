package render

import (
	"context"

	"github.com/goliatone/go-giftentry/pkg/model"
)

// Renderer converts a decorated form template into a byte representation
// (HTML preview, terminal session output, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, template model.FormTemplate, options RenderOptions) ([]byte, error)
}
