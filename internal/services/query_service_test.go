package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/Retriva/internal/core"
	"github.com/markdave123-py/Retriva/internal/models"
)

// fakeSearchClient returns a canned response and records the request it
// was handed.
type fakeSearchClient struct {
	resp    *core.SearchResponse
	err     error
	gotReq  *core.SearchRequest
	gotText *string
}

func (f *fakeSearchClient) Search(_ context.Context, query *string, req *core.SearchRequest) (*core.SearchResponse, error) {
	f.gotText = query
	f.gotReq = req
	return f.resp, f.err
}

func strptr(s string) *string { return &s }

func TestBuildSearchRequestDefaults(t *testing.T) {
	req := BuildSearchRequest(nil, models.RetrievalOptions{})

	assert.Equal(t, 3, req.Top)
	assert.Equal(t, core.QueryTypeSimple, req.QueryType)
	assert.Empty(t, req.Filter)
	assert.False(t, req.CaptionsEnabled)
	assert.Nil(t, req.Vector, "no embedding means no vector clause")
}

func TestBuildSearchRequestNoEmbeddingNoVector(t *testing.T) {
	req := BuildSearchRequest(nil, models.RetrievalOptions{RetrievalMode: models.RetrievalModeHybrid})
	assert.Nil(t, req.Vector)
}

func TestBuildSearchRequestTextModeSuppressesVector(t *testing.T) {
	req := BuildSearchRequest([]float32{0.1, 0.2}, models.RetrievalOptions{
		RetrievalMode: models.RetrievalModeText,
	})
	assert.Nil(t, req.Vector, "Text mode must suppress the vector clause even with an embedding")
}

func TestBuildSearchRequestVectorClause(t *testing.T) {
	emb := []float32{0.1, 0.2, 0.3}
	req := BuildSearchRequest(emb, models.RetrievalOptions{
		Top:           5,
		RetrievalMode: models.RetrievalModeVector,
	})

	require.NotNil(t, req.Vector)
	assert.Equal(t, "embedding", req.Vector.Field)
	assert.Equal(t, 5, req.Vector.K, "k mirrors top without semantic ranking")
	assert.Equal(t, emb, req.Vector.Vector)
}

func TestBuildSearchRequestSemanticBoostsK(t *testing.T) {
	req := BuildSearchRequest([]float32{0.5}, models.RetrievalOptions{
		Top:            3,
		SemanticRanker: true,
		RetrievalMode:  models.RetrievalModeHybrid,
	})

	require.NotNil(t, req.Vector)
	assert.Equal(t, 50, req.Vector.K, "semantic reranking needs the enlarged candidate pool")
	assert.Equal(t, 3, req.Top, "display cap is unaffected by the k boost")
	assert.Equal(t, core.QueryTypeSemantic, req.QueryType)
	assert.Equal(t, "default", req.SemanticConfiguration)
}

func TestBuildSearchRequestCaptionsRequireSemanticMode(t *testing.T) {
	// Captions toggled without the ranker are meaningless and stay off.
	req := BuildSearchRequest(nil, models.RetrievalOptions{SemanticCaptions: true})
	assert.False(t, req.CaptionsEnabled)

	req = BuildSearchRequest(nil, models.RetrievalOptions{SemanticRanker: true, SemanticCaptions: true})
	assert.True(t, req.CaptionsEnabled)
}

func TestBuildSearchRequestSourceFileFilter(t *testing.T) {
	req := BuildSearchRequest(nil, models.RetrievalOptions{SourceFileFilter: "report.pdf"})
	assert.Equal(t, "sourcefile eq 'report.pdf'", req.Filter)
}

func hitOf(sourcePage string, content any) core.Hit {
	fields := map[string]any{"content": content}
	if sourcePage != "" {
		fields["sourcepage"] = sourcePage
	}
	return core.Hit{Fields: fields}
}

func TestAssembleResultsRawContent(t *testing.T) {
	hits := []core.Hit{
		hitOf("report-0.pdf", "first fragment"),
		hitOf("report-1.pdf", "second fragment"),
	}

	records := AssembleResults(hits, false)
	require.Len(t, records, 2)
	assert.Equal(t, models.SupportingContent{SourcePage: "report-0.pdf", Content: "first fragment"}, records[0])
	assert.Equal(t, models.SupportingContent{SourcePage: "report-1.pdf", Content: "second fragment"}, records[1])
}

func TestAssembleResultsJoinsCaptions(t *testing.T) {
	hit := core.Hit{
		Fields:   map[string]any{"sourcepage": "report-2.pdf", "content": "ignored in caption mode"},
		Captions: []core.Caption{{Text: "a"}, {Text: "b"}},
	}

	records := AssembleResults([]core.Hit{hit}, true)
	require.Len(t, records, 1)
	assert.Equal(t, "a . b", records[0].Content)
}

func TestAssembleResultsCaptionModeDropsCaptionlessHit(t *testing.T) {
	records := AssembleResults([]core.Hit{hitOf("report-0.pdf", "raw content")}, true)
	assert.Empty(t, records)
}

func TestAssembleResultsDropsMalformedHits(t *testing.T) {
	hits := []core.Hit{
		hitOf("p-0.pdf", "ok zero"),
		{Fields: map[string]any{"content": "missing sourcepage"}},
		hitOf("p-2.pdf", "ok two"),
		hitOf("p-3.pdf", 42), // content of the wrong type
		hitOf("p-4.pdf", "ok four"),
	}

	records := AssembleResults(hits, false)
	require.Len(t, records, 3)

	// Survivors keep the original relevance order.
	assert.Equal(t, "p-0.pdf", records[0].SourcePage)
	assert.Equal(t, "p-2.pdf", records[1].SourcePage)
	assert.Equal(t, "p-4.pdf", records[2].SourcePage)
}

func TestAssembleResultsFlattensNewlines(t *testing.T) {
	records := AssembleResults([]core.Hit{hitOf("p-0.pdf", "line1\r\nline2")}, false)
	require.Len(t, records, 1)
	assert.Equal(t, "line1  line2", records[0].Content, "CR and LF each become one space")
}

func TestQueryNilResponseIsFatal(t *testing.T) {
	svc := NewQueryService(&fakeSearchClient{resp: nil})

	_, err := svc.Query(context.Background(), strptr("what is the deductible"), nil, models.RetrievalOptions{})
	require.ErrorIs(t, err, core.ErrNoSearchResponse)
}

func TestQueryZeroHitsIsValid(t *testing.T) {
	svc := NewQueryService(&fakeSearchClient{resp: &core.SearchResponse{}})

	records, err := svc.Query(context.Background(), strptr("nothing matches"), nil, models.RetrievalOptions{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestQueryPropagatesSearchError(t *testing.T) {
	svc := NewQueryService(&fakeSearchClient{err: errors.New("index offline")})

	_, err := svc.Query(context.Background(), strptr("q"), nil, models.RetrievalOptions{})
	require.ErrorContains(t, err, "index offline")
}

func TestQueryPassesBuiltRequestToCollaborator(t *testing.T) {
	fake := &fakeSearchClient{resp: &core.SearchResponse{}}
	svc := NewQueryService(fake)

	emb := []float32{1, 2, 3}
	_, err := svc.Query(context.Background(), strptr("travel policy"), emb, models.RetrievalOptions{
		Top:            7,
		SemanticRanker: true,
		RetrievalMode:  models.RetrievalModeHybrid,
	})
	require.NoError(t, err)

	require.NotNil(t, fake.gotReq)
	assert.Equal(t, 7, fake.gotReq.Top)
	require.NotNil(t, fake.gotReq.Vector)
	assert.Equal(t, 50, fake.gotReq.Vector.K)
	require.NotNil(t, fake.gotText)
	assert.Equal(t, "travel policy", *fake.gotText)
}
