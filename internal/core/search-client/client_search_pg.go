package searchclient

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
	"golang.org/x/sync/errgroup"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/markdave123-py/Retriva/internal/config"
	"github.com/markdave123-py/Retriva/internal/core"
)

// rrfConstant dampens the influence of top ranks when fusing the lexical
// and vector result lists (the usual value from the RRF paper).
const rrfConstant = 60

type PgSearchClient struct {
	db *sql.DB
}

// NewPgSearchClient opens the retrieval index connection and ensures the
// schema exists.
func NewPgSearchClient(ctx context.Context, cfg *config.Config) (core.SearchClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("search client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Sensible pool settings for an API service; adjust as needed.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(pingCtx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &PgSearchClient{db: db}, nil
}

func (c *PgSearchClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// rankedHit is one leg result before fusion.
type rankedHit struct {
	id         string
	sourcePage string
	sourceFile string
	content    string
}

// Search runs the lexical and vector legs the request asks for, fuses
// them with reciprocal rank fusion, and shapes the winners into hits.
// Captions, when enabled, come from ts_headline over the hit's content.
func (c *PgSearchClient) Search(ctx context.Context, query *string, req *core.SearchRequest) (*core.SearchResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil search request")
	}

	sourceFile, err := parseSourceFileFilter(req.Filter)
	if err != nil {
		return nil, err
	}

	text := ""
	if query != nil {
		text = strings.TrimSpace(*query)
	}

	var lexical, vector []rankedHit
	g, gctx := errgroup.WithContext(ctx)

	if text != "" {
		g.Go(func() error {
			var lerr error
			lexical, lerr = c.lexicalLeg(gctx, text, sourceFile, candidatePool(req))
			return lerr
		})
	}
	if req.Vector != nil {
		g.Go(func() error {
			var verr error
			vector, verr = c.vectorLeg(gctx, req.Vector, sourceFile)
			return verr
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := fuseByRank(lexical, vector)
	if len(merged) > req.Top {
		merged = merged[:req.Top]
	}

	hits := make([]core.Hit, 0, len(merged))
	for _, m := range merged {
		hit := core.Hit{Fields: map[string]any{
			"id":         m.id,
			"sourcepage": m.sourcePage,
			"sourcefile": m.sourceFile,
			"content":    m.content,
		}}
		if req.CaptionsEnabled && text != "" {
			captions, cerr := c.captionsFor(ctx, m.id, text)
			if cerr != nil {
				return nil, cerr
			}
			hit.Captions = captions
		}
		hits = append(hits, hit)
	}

	return &core.SearchResponse{Hits: hits}, nil
}

// candidatePool is how many lexical candidates to pull before fusion. A
// semantic request already carries an enlarged k on its vector clause;
// the lexical side mirrors it so the reranked pool is balanced.
func candidatePool(req *core.SearchRequest) int {
	n := req.Top
	if req.Vector != nil && req.Vector.K > n {
		n = req.Vector.K
	}
	return n
}

func (c *PgSearchClient) lexicalLeg(ctx context.Context, query, sourceFile string, limit int) ([]rankedHit, error) {
	q := `
		SELECT id, sourcepage, sourcefile, content
		FROM content_pages, websearch_to_tsquery('english', $1) tsq
		WHERE tsv @@ tsq
	`
	args := []any{query}
	if sourceFile != "" {
		q += ` AND sourcefile = $2`
		args = append(args, sourceFile)
	}
	q += fmt.Sprintf(` ORDER BY ts_rank_cd(tsv, tsq) DESC LIMIT %d`, limit)

	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("lexical search: %w", err)
	}
	defer rows.Close()
	return scanRankedHits(rows)
}

func (c *PgSearchClient) vectorLeg(ctx context.Context, vq *core.VectorQuery, sourceFile string) ([]rankedHit, error) {
	q := `
		SELECT id, sourcepage, sourcefile, content
		FROM content_pages
		WHERE embedding IS NOT NULL
	`
	args := []any{pgvector.NewVector(vq.Vector)}
	if sourceFile != "" {
		q += ` AND sourcefile = $2`
		args = append(args, sourceFile)
	}
	q += fmt.Sprintf(` ORDER BY embedding <=> $1 LIMIT %d`, vq.K)

	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()
	return scanRankedHits(rows)
}

func scanRankedHits(rows *sql.Rows) ([]rankedHit, error) {
	var out []rankedHit
	for rows.Next() {
		var h rankedHit
		if err := rows.Scan(&h.id, &h.sourcePage, &h.sourceFile, &h.content); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// captionsFor produces extractive highlight fragments for one hit.
func (c *PgSearchClient) captionsFor(ctx context.Context, id, query string) ([]core.Caption, error) {
	const q = `
		SELECT ts_headline('english', content, websearch_to_tsquery('english', $2),
			'MaxFragments=2, MinWords=5, MaxWords=24, FragmentDelimiter=" ... "')
		FROM content_pages
		WHERE id = $1
	`
	var headline string
	if err := c.db.QueryRowContext(ctx, q, id, query).Scan(&headline); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("captions: %w", err)
	}

	var captions []core.Caption
	for _, frag := range strings.Split(headline, " ... ") {
		if frag = strings.TrimSpace(frag); frag != "" {
			captions = append(captions, core.Caption{Text: frag})
		}
	}
	return captions, nil
}

// fuseByRank merges two ranked lists with reciprocal rank fusion. Hits
// appearing in both lists accumulate score from each.
func fuseByRank(lexical, vector []rankedHit) []rankedHit {
	scores := make(map[string]float64)
	byID := make(map[string]rankedHit)
	var order []string

	accumulate := func(list []rankedHit) {
		for rank, h := range list {
			if _, seen := byID[h.id]; !seen {
				byID[h.id] = h
				order = append(order, h.id)
			}
			scores[h.id] += 1.0 / float64(rrfConstant+rank+1)
		}
	}
	accumulate(lexical)
	accumulate(vector)

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	out := make([]rankedHit, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out
}

var sourceFileFilterRe = regexp.MustCompile(`^sourcefile eq '(.*)'$`)

// parseSourceFileFilter translates the request's equality filter
// expression back into its value. Empty filter means no constraint.
func parseSourceFileFilter(filter string) (string, error) {
	if filter == "" {
		return "", nil
	}
	m := sourceFileFilterRe.FindStringSubmatch(filter)
	if m == nil {
		return "", fmt.Errorf("unsupported filter expression: %q", filter)
	}
	return m[1], nil
}
