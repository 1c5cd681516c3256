package renderer

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"code.sajari.com/docconv"

	"github.com/markdave123-py/Retriva/internal/core"
)

var _ core.Renderer = (*WordRenderer)(nil)

// WordRenderer converts word-processing documents (.docx, .doc, .odt,
// .rtf) into paginated text pages via docconv.
type WordRenderer struct {
	linesPerPage int
}

func NewWordRenderer(linesPerPage int) *WordRenderer {
	return &WordRenderer{linesPerPage: linesPerPage}
}

func (r *WordRenderer) Render(ctx context.Context, filename string, data []byte) (core.PaginatedDocument, error) {
	return renderWithDocconv(ctx, filename, data, r.linesPerPage)
}

// renderWithDocconv is the shared extraction path for every docconv-backed
// format: extract text using the MIME type implied by the extension, then
// paginate. Empty extraction output is a conversion failure, not an empty
// document.
func renderWithDocconv(ctx context.Context, filename string, data []byte, linesPerPage int) (core.PaginatedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mimeType := docconv.MimeTypeByExtension(filename)
	res, err := docconv.Convert(bytes.NewReader(data), mimeType, false)
	if err != nil {
		return nil, fmt.Errorf("convert %s (%s): %w", filename, mimeType, err)
	}
	if strings.TrimSpace(res.Body) == "" {
		return nil, fmt.Errorf("convert %s: no extractable text", filename)
	}

	return paginateText(res.Body, linesPerPage), nil
}
