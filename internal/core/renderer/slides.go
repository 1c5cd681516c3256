package renderer

import (
	"context"

	"github.com/markdave123-py/Retriva/internal/core"
)

var _ core.Renderer = (*PresentationRenderer)(nil)

// PresentationRenderer converts slide decks (.pptx, .ppt) through the
// same docconv extraction path as word-processing files.
type PresentationRenderer struct {
	linesPerPage int
}

func NewPresentationRenderer(linesPerPage int) *PresentationRenderer {
	return &PresentationRenderer{linesPerPage: linesPerPage}
}

func (r *PresentationRenderer) Render(ctx context.Context, filename string, data []byte) (core.PaginatedDocument, error) {
	return renderWithDocconv(ctx, filename, data, r.linesPerPage)
}
