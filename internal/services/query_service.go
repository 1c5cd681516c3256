package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/markdave123-py/Retriva/internal/core"
	"github.com/markdave123-py/Retriva/internal/models"
)

const (
	// defaultTop caps results when the caller does not ask for a count.
	defaultTop = 3

	// semanticCandidates is the k-nearest-neighbors pool when semantic
	// reranking is on. The reranker needs far more candidates than the
	// final display count to reorder effectively.
	semanticCandidates = 50

	vectorField        = "embedding"
	semanticConfigName = "default"
)

// QueryService builds hybrid search requests, executes them against the
// search collaborator, and shapes raw hits into supporting content.
type QueryService struct {
	search core.SearchClient
}

func NewQueryService(search core.SearchClient) *QueryService {
	return &QueryService{search: search}
}

// BuildSearchRequest assembles the request for one query. Lexical,
// vector and semantic settings are independent: a "Text" retrieval mode
// suppresses the vector clause even when an embedding was supplied, and
// captions only mean something inside semantic mode.
func BuildSearchRequest(embedding []float32, opts models.RetrievalOptions) *core.SearchRequest {
	top := opts.Top
	if top <= 0 {
		top = defaultTop
	}

	req := &core.SearchRequest{
		Top:       top,
		QueryType: core.QueryTypeSimple,
	}

	if opts.SourceFileFilter != "" {
		req.Filter = fmt.Sprintf("sourcefile eq '%s'", opts.SourceFileFilter)
	}

	if opts.SemanticRanker {
		req.QueryType = core.QueryTypeSemantic
		req.SemanticConfiguration = semanticConfigName
		req.CaptionsEnabled = opts.SemanticCaptions
	}

	if len(embedding) > 0 && opts.RetrievalMode != models.RetrievalModeText {
		k := top
		if opts.SemanticRanker {
			k = semanticCandidates
		}
		req.Vector = &core.VectorQuery{Field: vectorField, K: k, Vector: embedding}
	}

	return req
}

// AssembleResults walks raw hits in relevance order and emits one record
// per well-formed hit. Hits missing a source page or usable content are
// dropped silently: they are malformed index entries, not errors.
func AssembleResults(hits []core.Hit, useSemanticCaptions bool) []models.SupportingContent {
	out := make([]models.SupportingContent, 0, len(hits))

	for _, h := range hits {
		sourcePage, ok := h.Fields["sourcepage"].(string)
		if !ok || sourcePage == "" {
			continue
		}

		var content string
		if useSemanticCaptions {
			if len(h.Captions) == 0 {
				continue
			}
			parts := make([]string, len(h.Captions))
			for i, c := range h.Captions {
				parts[i] = c.Text
			}
			content = strings.Join(parts, " . ")
		} else {
			content, ok = h.Fields["content"].(string)
			if !ok {
				continue
			}
		}

		out = append(out, models.SupportingContent{
			SourcePage: sourcePage,
			Content:    flattenLine(content),
		})
	}

	return out
}

// flattenLine collapses a fragment to a single line: CR and LF are each
// replaced by one space, independently.
func flattenLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// Query runs one retrieval round trip. A missing response object from
// the collaborator is fatal; zero hits is a valid empty result.
func (s *QueryService) Query(ctx context.Context, query *string, embedding []float32, opts models.RetrievalOptions) ([]models.SupportingContent, error) {
	req := BuildSearchRequest(embedding, opts)

	resp, err := s.search.Search(ctx, query, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if resp == nil {
		return nil, core.ErrNoSearchResponse
	}

	return AssembleResults(resp.Hits, req.CaptionsEnabled), nil
}
