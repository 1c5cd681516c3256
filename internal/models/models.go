package models

// RetrievalMode selects which retrieval legs a query uses.
type RetrievalMode string

const (
	RetrievalModeText   RetrievalMode = "Text"
	RetrievalModeVector RetrievalMode = "Vector"
	RetrievalModeHybrid RetrievalMode = "Hybrid"
)

// RetrievalOptions is the per-query configuration supplied by the caller.
// Nothing here is persisted.
type RetrievalOptions struct {
	Top              int           `json:"top" validate:"omitempty,gte=1,lte=50"`
	SourceFileFilter string        `json:"source_file_filter,omitempty"`
	SemanticRanker   bool          `json:"semantic_ranker"`
	SemanticCaptions bool          `json:"semantic_captions"`
	RetrievalMode    RetrievalMode `json:"retrieval_mode" validate:"omitempty,oneof=Text Vector Hybrid"`
}

// IngestFile is one (name, bytes) pair of an ingestion batch.
type IngestFile struct {
	Name string
	Data []byte
}

// UploadResult lists the object keys actually written during one
// ingestion call. Keys that already existed are excluded.
type UploadResult struct {
	UploadedKeys []string `json:"uploaded_keys"`
}

// SupportingContent is one cleaned, single-line text fragment with the
// page it came from, in the relevance order returned by the index.
type SupportingContent struct {
	SourcePage string `json:"source_page"`
	Content    string `json:"content"`
}

// SearchQueryRequest is the body of the query endpoint. Query and
// Embedding are each optional, but at least one retrieval leg must be
// derivable from what is supplied.
type SearchQueryRequest struct {
	Query     *string          `json:"query,omitempty"`
	Embedding []float32        `json:"embedding,omitempty"`
	Options   RetrievalOptions `json:"options"`
}
