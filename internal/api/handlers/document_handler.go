package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/markdave123-py/Retriva/internal/config"
	"github.com/markdave123-py/Retriva/internal/core"
	"github.com/markdave123-py/Retriva/internal/models"
	"github.com/markdave123-py/Retriva/internal/services"
)

type DocumentHandler struct {
	objectclient core.ObjectClient
	ingest       *services.IngestService
	cfg          *config.Config
}

func NewDocumentHandler(objectclient core.ObjectClient, ingest *services.IngestService, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{objectclient: objectclient, ingest: ingest, cfg: cfg}
}

// UploadDocuments ingests a multipart batch of files: each file is
// normalized to PDF, split into pages, and every unseen page is uploaded.
// The response is either a list of written keys or an error payload with
// a diagnostic message, never both.
func (h *DocumentHandler) UploadDocuments(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseMultipartForm(64 << 20); err != nil { // 64 MB in memory, rest on disk
		http.Error(w, "invalid multipart body", http.StatusBadRequest)
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		http.Error(w, "no files in request", http.StatusBadRequest)
		return
	}

	var files []models.IngestFile
	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			http.Error(w, fmt.Sprintf("open %s: %v", header.Filename, err), http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			http.Error(w, fmt.Sprintf("read %s: %v", header.Filename, err), http.StatusBadRequest)
			return
		}

		// Sanitize filename to prevent path traversal or invalid characters
		files = append(files, models.IngestFile{
			Name: filepath.Base(header.Filename),
			Data: data,
		})
	}

	result, err := h.ingest.IngestBatch(r.Context(), files)
	if err != nil {
		if errors.Is(err, services.ErrNoNewUploads) {
			// Descriptive outcome, not a server failure.
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		log.Printf("DocumentHandler: batch ingestion failed: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetDocuments lists the page objects currently in the content store.
func (h *DocumentHandler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	keys, err := h.objectclient.ListKeys(r.Context(), h.cfg.BucketName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{"keys": keys})
}
