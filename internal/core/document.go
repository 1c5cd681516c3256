package core

import "io"

// PageContentType is the MIME type every uploaded page carries. All source
// formats are normalized to the page-description format before upload.
const PageContentType = "application/pdf"

// Page is one page of a paginated document together with its zero-based
// index in the originating file. A Page is immutable once produced.
type Page interface {
	// Index is the zero-based position of the page within its document.
	Index() int

	// WriteTo serializes just this page as a standalone page-description
	// document. A serialization failure is fatal for the whole file.
	WriteTo(w io.Writer) error
}

// PaginatedDocument is an ordered, page-addressable document produced by a
// Renderer. It lives only for the duration of one file's ingestion.
type PaginatedDocument interface {
	PageCount() int
	Page(i int) Page
}
