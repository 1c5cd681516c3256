package renderer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpreadsheetRendererCSV(t *testing.T) {
	r := NewSpreadsheetRenderer(48)
	data := []byte("name,amount\nalice,10\nbob,20\n")

	doc, err := r.Render(context.Background(), "data.csv", data)
	require.NoError(t, err)
	require.Equal(t, 1, doc.PageCount())

	var buf bytes.Buffer
	require.NoError(t, doc.Page(0).WriteTo(&buf))
	out := buf.String()
	assert.Contains(t, out, "(name, amount) Tj")
	assert.Contains(t, out, "(alice, 10) Tj")
	assert.Contains(t, out, "(bob, 20) Tj")
}

func TestSpreadsheetRendererTSV(t *testing.T) {
	r := NewSpreadsheetRenderer(48)
	doc, err := r.Render(context.Background(), "data.tsv", []byte("a\tb\nc\td\n"))
	require.NoError(t, err)
	require.Equal(t, 1, doc.PageCount())
}

func TestSpreadsheetRendererPaginatesLargeCSV(t *testing.T) {
	var data bytes.Buffer
	data.WriteString("col\n")
	for i := 0; i < 100; i++ {
		data.WriteString("row\n")
	}

	r := NewSpreadsheetRenderer(40)
	doc, err := r.Render(context.Background(), "big.csv", data.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, doc.PageCount()) // 101 lines at 40 per page
}

func TestSpreadsheetRendererRaggedRows(t *testing.T) {
	r := NewSpreadsheetRenderer(48)
	_, err := r.Render(context.Background(), "ragged.csv", []byte("a,b,c\nd\ne,f\n"))
	assert.NoError(t, err)
}

func TestSpreadsheetRendererEmptyCSVFails(t *testing.T) {
	r := NewSpreadsheetRenderer(48)
	_, err := r.Render(context.Background(), "empty.csv", []byte(""))
	require.ErrorContains(t, err, "no rows")
}

func TestSpreadsheetRendererCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewSpreadsheetRenderer(48)
	_, err := r.Render(ctx, "data.csv", []byte("a,b\n"))
	require.ErrorIs(t, err, context.Canceled)
}
