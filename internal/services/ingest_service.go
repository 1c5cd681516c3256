package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/markdave123-py/Retriva/internal/core"
	"github.com/markdave123-py/Retriva/internal/core/ingestion_engine"
	"github.com/markdave123-py/Retriva/internal/models"
)

// ErrNoNewUploads reports a batch that processed without writing any new
// page object. Descriptive outcome, not a hard failure: it lets callers
// tell "nothing new" apart from "nothing attempted".
var ErrNoNewUploads = errors.New("no files were uploaded: every page already exists or no file was in a supported format")

// FileClass is the closed set of source formats the dispatcher routes.
type FileClass int

const (
	ClassUnsupported FileClass = iota
	ClassWord
	ClassSpreadsheet
	ClassPresentation
	ClassPageDescription
)

// extClasses maps a lower-cased extension to its format class. The sets
// are disjoint; extensions absent here are silently ignored.
var extClasses = map[string]FileClass{
	".docx": ClassWord,
	".doc":  ClassWord,
	".odt":  ClassWord,
	".rtf":  ClassWord,
	".xlsx": ClassSpreadsheet,
	".xls":  ClassSpreadsheet,
	".csv":  ClassSpreadsheet,
	".tsv":  ClassSpreadsheet,
	".pptx": ClassPresentation,
	".ppt":  ClassPresentation,
	".pdf":  ClassPageDescription,
}

// ClassifyFile resolves a file name to its format class, matching the
// extension case-insensitively.
func ClassifyFile(name string) FileClass {
	return extClasses[strings.ToLower(filepath.Ext(name))]
}

// IngestService funnels every supported file through one pipeline:
// render to the page-description format, split into pages, upload each
// unseen page.
type IngestService struct {
	renderers map[FileClass]core.Renderer
	uploader  *ingestion_engine.PageUploader
}

func NewIngestService(word, sheet, slides, pdf core.Renderer, uploader *ingestion_engine.PageUploader) *IngestService {
	return &IngestService{
		renderers: map[FileClass]core.Renderer{
			ClassWord:            word,
			ClassSpreadsheet:     sheet,
			ClassPresentation:    slides,
			ClassPageDescription: pdf,
		},
		uploader: uploader,
	}
}

// IngestBatch processes a batch of files and returns the union of page
// keys actually written. Failures are isolated per file; cancellation
// aborts the whole batch. The call never lets a panic escape — anything
// unexpected comes back as an error.
func (s *IngestService) IngestBatch(ctx context.Context, files []models.IngestFile) (result *models.UploadResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("ingestion aborted: %v", r)
		}
	}()

	batchID := uuid.NewString()
	written := make([]string, 0)

	for _, f := range files {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}

		keys, ferr := s.ingestOne(ctx, f)
		if ferr != nil {
			if errors.Is(ferr, context.Canceled) || errors.Is(ferr, context.DeadlineExceeded) {
				return nil, ferr
			}
			// Conversion or upload failure: fatal for this file only.
			log.Printf("IngestService[%s]: %s failed: %v", batchID, f.Name, ferr)
			continue
		}
		written = append(written, keys...)
	}

	if len(files) > 0 && len(written) == 0 {
		return nil, ErrNoNewUploads
	}

	log.Printf("IngestService[%s]: uploaded %d page(s) from %d file(s)", batchID, len(written), len(files))
	return &models.UploadResult{UploadedKeys: written}, nil
}

func (s *IngestService) ingestOne(ctx context.Context, f models.IngestFile) ([]string, error) {
	class := ClassifyFile(f.Name)
	if class == ClassUnsupported {
		log.Printf("IngestService: skipping %s (unsupported extension)", f.Name)
		return nil, nil
	}

	doc, err := s.renderers[class].Render(ctx, f.Name, f.Data)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	// Converted files are uploaded under their post-conversion name so
	// page keys follow the {base}-{index}.pdf rule for every format.
	uploadName := filepath.Base(f.Name)
	if class != ClassPageDescription {
		uploadName = convertedName(uploadName)
	}

	keys, err := s.uploader.UploadPages(ctx, uploadName, ingestion_engine.Split(doc))
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	return keys, nil
}

func convertedName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".pdf"
}
