package ingestion_engine

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/markdave123-py/Retriva/internal/core"
)

// BlobNameFromFilePage derives the object key for one page of a file.
// Pure function of its inputs; identical inputs always produce identical
// keys, which is what makes re-running a batch idempotent.
//
// Files already in the page-description format get per-page keys
// ("report.pdf", 2) -> "report-2.pdf". Anything else keeps its bare name:
// that branch is only reachable for input that bypassed conversion, and
// is kept for input-contract robustness.
func BlobNameFromFilePage(filename string, page int) string {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	if strings.EqualFold(ext, ".pdf") {
		return fmt.Sprintf("%s-%d.pdf", strings.TrimSuffix(base, ext), page)
	}
	return base
}

// PageUploader writes single pages into the content store, skipping keys
// that already exist. The store's existence check is the serialization
// point; no local locking is needed.
type PageUploader struct {
	obj    core.ObjectClient
	bucket string
}

func NewPageUploader(obj core.ObjectClient, bucket string) *PageUploader {
	return &PageUploader{obj: obj, bucket: bucket}
}

// UploadPages uploads every unseen page of one file and returns the keys
// actually written. The first failed page aborts the rest of the file;
// keys written up to that point are returned alongside the error.
func (u *PageUploader) UploadPages(ctx context.Context, filename string, pages iter.Seq2[int, core.Page]) ([]string, error) {
	var written []string

	for idx, page := range pages {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		key := BlobNameFromFilePage(filename, idx)

		exists, err := u.obj.Exists(ctx, u.bucket, key)
		if err != nil {
			return written, fmt.Errorf("existence check %s: %w", key, err)
		}
		if exists {
			log.Printf("PageUploader: %s already present, skipping", key)
			continue
		}

		if err := u.uploadOne(ctx, key, page); err != nil {
			return written, err
		}
		written = append(written, key)
	}

	return written, nil
}

// uploadOne serializes the page through a scratch file and uploads it.
// The scratch file is removed on every exit path.
func (u *PageUploader) uploadOne(ctx context.Context, key string, page core.Page) error {
	tmp, err := os.CreateTemp("", "retriva-page-*.pdf")
	if err != nil {
		return fmt.Errorf("scratch file for %s: %w", key, err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := page.WriteTo(tmp); err != nil {
		return fmt.Errorf("serialize page %d of %s: %w", page.Index(), key, err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind scratch file: %w", err)
	}
	data, err := io.ReadAll(tmp)
	if err != nil {
		return fmt.Errorf("read scratch file: %w", err)
	}

	if err := u.obj.Upload(ctx, u.bucket, key, data, core.PageContentType); err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}
