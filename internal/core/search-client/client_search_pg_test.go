package searchclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/Retriva/internal/core"
)

func TestParseSourceFileFilter(t *testing.T) {
	got, err := parseSourceFileFilter("sourcefile eq 'report.pdf'")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", got)
}

func TestParseSourceFileFilterEmpty(t *testing.T) {
	got, err := parseSourceFileFilter("")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestParseSourceFileFilterUnsupported(t *testing.T) {
	for _, filter := range []string{
		"sourcepage eq 'report-0.pdf'",
		"sourcefile ne 'report.pdf'",
		"sourcefile eq report.pdf",
		"category eq 'x' and sourcefile eq 'y'",
	} {
		_, err := parseSourceFileFilter(filter)
		assert.ErrorContains(t, err, "unsupported filter expression", filter)
	}
}

func TestFuseByRankPrefersBothLists(t *testing.T) {
	lexical := []rankedHit{
		{id: "a", content: "alpha"},
		{id: "b", content: "bravo"},
		{id: "c", content: "charlie"},
	}
	vector := []rankedHit{
		{id: "b", content: "bravo"},
		{id: "d", content: "delta"},
	}

	merged := fuseByRank(lexical, vector)

	require.Len(t, merged, 4)
	// b scores from both legs and beats every single-leg hit.
	assert.Equal(t, "b", merged[0].id)
	assert.Equal(t, "a", merged[1].id)
}

func TestFuseByRankSingleList(t *testing.T) {
	lexical := []rankedHit{{id: "a"}, {id: "b"}, {id: "c"}}

	merged := fuseByRank(lexical, nil)

	require.Len(t, merged, 3)
	assert.Equal(t, "a", merged[0].id)
	assert.Equal(t, "b", merged[1].id)
	assert.Equal(t, "c", merged[2].id)
}

func TestFuseByRankEmpty(t *testing.T) {
	assert.Empty(t, fuseByRank(nil, nil))
}

func TestFuseByRankStableOnTies(t *testing.T) {
	// Same rank in disjoint lists ties on score; first-seen order holds.
	lexical := []rankedHit{{id: "a"}}
	vector := []rankedHit{{id: "z"}}

	merged := fuseByRank(lexical, vector)

	require.Len(t, merged, 2)
	assert.Equal(t, "a", merged[0].id)
	assert.Equal(t, "z", merged[1].id)
}

func TestCandidatePoolDefaultsToTop(t *testing.T) {
	req := &core.SearchRequest{Top: 3}
	assert.Equal(t, 3, candidatePool(req))
}

func TestCandidatePoolFollowsEnlargedVectorK(t *testing.T) {
	req := &core.SearchRequest{
		Top:    3,
		Vector: &core.VectorQuery{K: 50},
	}
	assert.Equal(t, 50, candidatePool(req))
}

func TestCandidatePoolIgnoresSmallerK(t *testing.T) {
	req := &core.SearchRequest{
		Top:    10,
		Vector: &core.VectorQuery{K: 5},
	}
	assert.Equal(t, 10, candidatePool(req))
}
