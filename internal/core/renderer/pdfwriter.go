package renderer

import (
	"bytes"
	"fmt"
	"io"
)

// writeTextPDF serializes one page of text lines as a minimal standalone
// PDF: US Letter media box, Helvetica 10pt, one text object. It emits
// uncompressed streams so the output stays trivially inspectable.
func writeTextPDF(w io.Writer, lines []string) error {
	var content bytes.Buffer
	content.WriteString("BT\n/F1 10 Tf\n12 TL\n50 742 Td\n")
	for _, line := range lines {
		content.WriteString("(")
		content.Write(escapePDFString(line))
		content.WriteString(") Tj\nT*\n")
	}
	content.WriteString("ET\n")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	_, err := w.Write(buf.Bytes())
	return err
}

// escapePDFString makes a line safe inside a PDF literal string. Runes
// outside Latin-1 have no slot in the standard Helvetica encoding and are
// substituted.
func escapePDFString(s string) []byte {
	var out bytes.Buffer
	for _, r := range s {
		switch {
		case r == '\\' || r == '(' || r == ')':
			out.WriteByte('\\')
			out.WriteByte(byte(r))
		case r > 0xFF:
			out.WriteByte('?')
		case r < 0x20:
			out.WriteByte(' ')
		default:
			out.WriteByte(byte(r))
		}
	}
	return out.Bytes()
}
