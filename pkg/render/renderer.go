package render

import (
	"context"

	"github.com/goliatone/go-datatable/pkg/view"
)

// Renderer converts a data table view tree into markup.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, table *view.View, options RenderOptions) ([]byte, error)
}
