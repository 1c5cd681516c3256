package core

import "context"

// ObjectClient defines interactions with S3 or any object storage.
// It’s abstract so you can replace AWS with MinIO, GCP, etc. easily.
type ObjectClient interface {
	// Exists reports whether an object with the given key is already
	// present. It is the de-duplication guard for idempotent ingestion.
	Exists(ctx context.Context, bucket, key string) (bool, error)

	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error

	ListKeys(ctx context.Context, bucket string) ([]string, error)
}

// SearchClient executes an assembled request against the search index.
// A nil response with a nil error must never happen from a healthy
// collaborator; callers treat it as a fatal invalid-operation condition.
type SearchClient interface {
	Search(ctx context.Context, query *string, req *SearchRequest) (*SearchResponse, error)
}

// Renderer converts one source document format into a paginated
// page-description document. One implementation exists per source format;
// the filename is passed so the renderer can pick a parsing strategy for
// sibling extensions it owns (e.g. .csv vs .xlsx).
type Renderer interface {
	Render(ctx context.Context, filename string, data []byte) (PaginatedDocument, error)
}
