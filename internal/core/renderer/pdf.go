package renderer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/markdave123-py/Retriva/internal/core"
)

var _ core.Renderer = (*PDFRenderer)(nil)

// PDFRenderer handles files already in the page-description format.
// No conversion happens; the source bytes are kept and individual pages
// are cut out of them on demand.
type PDFRenderer struct {
	conf *model.Configuration
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{conf: api.LoadConfiguration()}
}

func (r *PDFRenderer) Render(ctx context.Context, filename string, data []byte) (core.PaginatedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, err := api.PageCount(bytes.NewReader(data), r.conf)
	if err != nil {
		return nil, fmt.Errorf("parse pdf %s: %w", filename, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("pdf %s has no pages", filename)
	}

	return &pdfDocument{data: data, pages: n, conf: r.conf}, nil
}

type pdfDocument struct {
	data  []byte
	pages int
	conf  *model.Configuration
}

func (d *pdfDocument) PageCount() int { return d.pages }

func (d *pdfDocument) Page(i int) core.Page { return &pdfPage{doc: d, index: i} }

type pdfPage struct {
	doc   *pdfDocument
	index int
}

func (p *pdfPage) Index() int { return p.index }

// WriteTo emits a standalone PDF containing only this page.
// pdfcpu page selections are 1-based.
func (p *pdfPage) WriteTo(w io.Writer) error {
	sel := []string{strconv.Itoa(p.index + 1)}
	if err := api.Trim(bytes.NewReader(p.doc.data), w, sel, p.doc.conf); err != nil {
		return fmt.Errorf("extract page %d: %w", p.index, err)
	}
	return nil
}
