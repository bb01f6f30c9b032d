package render

import (
	"context"

	"github.com/goliatone/go-lessonplan/pkg/form"
)

// Renderer converts a form snapshot into a byte representation (an
// interactive page, a printable document, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snap form.Snapshot, options RenderOptions) ([]byte, error)
}
