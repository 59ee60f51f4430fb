// Package publish uploads a run's artifacts to remote storage so
// fine-tuning jobs can pick them up.
package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"intentforge/internal/dataset"
)

// Content types for published artifacts.
const (
	ContentTypeJSONL = "application/jsonl"
	ContentTypeGzip  = "application/gzip"
	ContentTypeJSON  = "application/json"
)

// Uploader sends one artifact to remote storage.
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) error
}

// Result records one uploaded artifact.
type Result struct {
	Name        string
	ContentType string
	Size        int64
}

// Run uploads the artifacts of the run recorded in dir's manifest: every
// partition's merged and full files, then the manifest itself. Upload order
// puts the manifest last so a reader that sees it can count on the artifacts
// it names being present.
func Run(ctx context.Context, up Uploader, dir string) ([]Result, error) {
	m, err := dataset.ReadManifest(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, p := range m.Partitions {
		names = append(names, p.Merged, p.Full)
	}
	names = append(names, dataset.ManifestName)

	results := make([]Result, 0, len(names))
	for _, name := range names {
		res, err := uploadFile(ctx, up, dir, name)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func uploadFile(ctx context.Context, up Uploader, dir, name string) (Result, error) {
	p := filepath.Join(dir, name)
	f, err := os.Open(p)
	if err != nil {
		return Result{}, fmt.Errorf("opening artifact: %w", err)
	}
	defer f.Close() //nolint:errcheck

	info, err := f.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("stat %s: %w", p, err)
	}

	ct := contentTypeFor(name)
	if err := up.Upload(ctx, name, ct, f); err != nil {
		return Result{}, fmt.Errorf("uploading %s: %w", name, err)
	}
	return Result{Name: name, ContentType: ct, Size: info.Size()}, nil
}

func contentTypeFor(name string) string {
	switch {
	case strings.HasSuffix(name, ".gz"):
		return ContentTypeGzip
	case strings.HasSuffix(name, ".jsonl"):
		return ContentTypeJSONL
	default:
		return ContentTypeJSON
	}
}
