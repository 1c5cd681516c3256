package core

import "errors"

// ErrNoSearchResponse is returned when the search collaborator yields no
// response object at all. Distinct from a valid response with zero hits.
var ErrNoSearchResponse = errors.New("search returned no response")

// QueryType selects how the search index interprets the lexical query.
type QueryType string

const (
	QueryTypeSimple   QueryType = "simple"
	QueryTypeSemantic QueryType = "semantic"
)

// VectorQuery is the k-nearest-neighbors clause of a search request.
type VectorQuery struct {
	Field  string
	K      int
	Vector []float32
}

// SearchRequest is an assembled query. It is built fresh per call and
// never mutated after construction.
type SearchRequest struct {
	Filter                string // equality filter expression, "" for none
	Top                   int
	QueryType             QueryType
	SemanticConfiguration string
	CaptionsEnabled       bool
	Vector                *VectorQuery // nil when no vector leg is wanted
}

// Caption is a short extractive highlight produced by the semantic layer.
type Caption struct {
	Text string
}

// Hit is one raw search result. Fields carries the stored document fields
// (at least "sourcepage" and "content" for well-formed entries); Captions
// is populated only when the request enabled semantic captions.
type Hit struct {
	Fields   map[string]any
	Captions []Caption
}

// SearchResponse wraps the hits of one executed request, in relevance
// order as returned by the index.
type SearchResponse struct {
	Hits []Hit
}
