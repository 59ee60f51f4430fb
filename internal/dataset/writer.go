package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"intentforge/internal/models"
)

// Artifact names the two files written for one partition.
type Artifact struct {
	// Merged is the adapter-training encoding: one merged messages array per
	// line. This is the file a fine-tuning job uploads.
	Merged string
	// Full is the complete record encoding, one DatasetRow per line.
	Full string
}

// mergedRow is the shape of one line of the merged artifact.
type mergedRow struct {
	Messages []models.Message `json:"messages"`
}

// WriteOptions adjust how partition artifacts are written.
type WriteOptions struct {
	// Compress gzips each artifact and appends a .gz suffix to its name.
	Compress bool
}

// WritePartition persists one partition's rows under dir as two
// newline-delimited JSON artifacts: dataset-<id>.jsonl with only the merged
// messages array per row, and dataset-<id>-full.jsonl with the complete
// record. The merged encoding is derived from the full rows here, at write
// time; it is never maintained as separate state.
func WritePartition(dir, id string, rows []models.DatasetRow, opts WriteOptions) (Artifact, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Artifact{}, fmt.Errorf("creating dataset directory: %w", err)
	}

	mergedName := fmt.Sprintf("dataset-%s.jsonl", id)
	fullName := fmt.Sprintf("dataset-%s-full.jsonl", id)
	if opts.Compress {
		mergedName += ".gz"
		fullName += ".gz"
	}

	art := Artifact{
		Merged: filepath.Join(dir, mergedName),
		Full:   filepath.Join(dir, fullName),
	}

	err := writeJSONL(art.Full, opts.Compress, func(enc *json.Encoder) error {
		for i := range rows {
			if err := enc.Encode(rows[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Artifact{}, err
	}

	err = writeJSONL(art.Merged, opts.Compress, func(enc *json.Encoder) error {
		for i := range rows {
			if err := enc.Encode(mergedRow{Messages: MergeMessages(rows[i].Messages)}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Artifact{}, err
	}

	return art, nil
}

// writeJSONL streams JSON lines into path. json.Encoder terminates every
// record with a newline, so artifacts always end with one.
func writeJSONL(path string, compress bool, write func(enc *json.Encoder) error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	var w io.Writer = f
	var gz *gzip.Writer
	if compress {
		gz = gzip.NewWriter(f)
		w = gz
	}

	if err := write(json.NewEncoder(w)); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			f.Close() //nolint:errcheck
			return fmt.Errorf("flushing %s: %w", path, err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// ReadRows loads a JSONL artifact back into memory. Merged artifacts decode
// with only Messages populated. Artifacts written with compression are
// recognized by their .gz suffix.
func ReadRows(path string) ([]models.DatasetRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		defer gz.Close() //nolint:errcheck
		r = gz
	}

	var rows []models.DatasetRow
	dec := json.NewDecoder(r)
	for {
		var row models.DatasetRow
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
