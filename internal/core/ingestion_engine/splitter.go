package ingestion_engine

import (
	"iter"

	"github.com/markdave123-py/Retriva/internal/core"
)

// Split yields every page of doc in document order, index 0..N-1. The
// sequence is lazy and restartable; ranging over it again starts from
// page zero. Pages are rendered only when a consumer serializes them, so
// a skipped page costs nothing.
func Split(doc core.PaginatedDocument) iter.Seq2[int, core.Page] {
	return func(yield func(int, core.Page) bool) {
		for i := 0; i < doc.PageCount(); i++ {
			if !yield(i, doc.Page(i)) {
				return
			}
		}
	}
}
