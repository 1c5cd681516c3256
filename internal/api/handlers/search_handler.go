package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/markdave123-py/Retriva/internal/core"
	"github.com/markdave123-py/Retriva/internal/models"
	"github.com/markdave123-py/Retriva/internal/services"
)

type SearchHandler struct {
	query    *services.QueryService
	validate *validator.Validate
}

func NewSearchHandler(query *services.QueryService) *SearchHandler {
	return &SearchHandler{query: query, validate: validator.New()}
}

// Query runs one retrieval round trip and returns supporting-content
// records in relevance order. Zero records is a valid response.
func (h *SearchHandler) Query(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.SearchQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", 400)
		return
	}
	if err := h.validate.Struct(req.Options); err != nil {
		http.Error(w, fmt.Sprintf("invalid options: %v", err), 400)
		return
	}

	hasQuery := req.Query != nil && strings.TrimSpace(*req.Query) != ""
	if !hasQuery && len(req.Embedding) == 0 {
		http.Error(w, "query text or embedding required", 400)
		return
	}

	records, err := h.query.Query(ctx, req.Query, req.Embedding, req.Options)
	if err != nil {
		if errors.Is(err, core.ErrNoSearchResponse) {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		http.Error(w, fmt.Sprintf("search failed: %v", err), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]models.SupportingContent{
		"supporting_content": records,
	})
}
