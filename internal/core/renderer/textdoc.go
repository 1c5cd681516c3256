package renderer

import (
	"io"
	"strings"

	"github.com/markdave123-py/Retriva/internal/core"
)

// maxLineRunes keeps extracted lines inside the fixed page layout the
// serializer draws; longer lines are wrapped, preferably on a space.
const maxLineRunes = 100

// textDocument is the paginated form of a converted (non-PDF) source:
// plain text lines grouped into fixed-size pages.
type textDocument struct {
	pages [][]string
}

func (d *textDocument) PageCount() int { return len(d.pages) }

func (d *textDocument) Page(i int) core.Page {
	return &textPage{lines: d.pages[i], index: i}
}

type textPage struct {
	lines []string
	index int
}

func (p *textPage) Index() int { return p.index }

func (p *textPage) WriteTo(w io.Writer) error {
	return writeTextPDF(w, p.lines)
}

// paginateText wraps and groups extracted text into pages of linesPerPage
// lines. Blank lines are kept so paragraph structure survives, but leading
// and trailing whitespace per line does not.
func paginateText(text string, linesPerPage int) *textDocument {
	if linesPerPage <= 0 {
		linesPerPage = 48
	}

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(strings.ReplaceAll(raw, "\r", ""), " \t")
		for _, wrapped := range wrapLine(line, maxLineRunes) {
			lines = append(lines, wrapped)
		}
	}

	// Drop a run of trailing blank lines so the last page is not empty.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	doc := &textDocument{}
	for start := 0; start < len(lines); start += linesPerPage {
		end := start + linesPerPage
		if end > len(lines) {
			end = len(lines)
		}
		doc.pages = append(doc.pages, lines[start:end])
	}
	return doc
}

// wrapLine splits a line into segments of at most width runes, breaking at
// the last space inside the window when there is one.
func wrapLine(line string, width int) []string {
	runes := []rune(line)
	if len(runes) <= width {
		return []string{line}
	}

	var out []string
	for len(runes) > width {
		cut := width
		for i := width; i > width/2; i-- {
			if runes[i-1] == ' ' {
				cut = i
				break
			}
		}
		out = append(out, strings.TrimRight(string(runes[:cut]), " "))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}
