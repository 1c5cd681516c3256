package renderer

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/markdave123-py/Retriva/internal/core"
)

var _ core.Renderer = (*SpreadsheetRenderer)(nil)

// SpreadsheetRenderer converts tabular formats. Plain delimited text
// (.csv, .tsv) is parsed directly; binary spreadsheet formats go through
// docconv like the other office formats.
type SpreadsheetRenderer struct {
	linesPerPage int
}

func NewSpreadsheetRenderer(linesPerPage int) *SpreadsheetRenderer {
	return &SpreadsheetRenderer{linesPerPage: linesPerPage}
}

func (r *SpreadsheetRenderer) Render(ctx context.Context, filename string, data []byte) (core.PaginatedDocument, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return r.renderDelimited(ctx, filename, data, ',')
	case ".tsv":
		return r.renderDelimited(ctx, filename, data, '\t')
	default:
		return renderWithDocconv(ctx, filename, data, r.linesPerPage)
	}
}

func (r *SpreadsheetRenderer) renderDelimited(ctx context.Context, filename string, data []byte, comma rune) (core.PaginatedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1 // ragged rows are common in exported sheets

	var sb strings.Builder
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filename, err)
		}
		sb.WriteString(strings.Join(record, ", "))
		sb.WriteString("\n")
	}
	if strings.TrimSpace(sb.String()) == "" {
		return nil, fmt.Errorf("parse %s: no rows", filename)
	}

	return paginateText(sb.String(), r.linesPerPage), nil
}
