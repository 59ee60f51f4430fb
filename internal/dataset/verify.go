package dataset

import (
	"fmt"
	"path/filepath"
)

// Verify cross-checks the artifacts under dir against the run manifest:
// every artifact it lists must parse as JSON lines and hold exactly the row
// count recorded for its partition. Publishing runs this before any upload
// so a truncated or hand-edited file never reaches shared storage.
func Verify(dir string) error {
	m, err := ReadManifest(dir)
	if err != nil {
		return err
	}
	for _, p := range m.Partitions {
		for _, name := range []string{p.Full, p.Merged} {
			rows, err := ReadRows(filepath.Join(dir, name))
			if err != nil {
				return err
			}
			if len(rows) != p.Rows {
				return fmt.Errorf("%s: manifest records %d rows, artifact holds %d", name, p.Rows, len(rows))
			}
		}
	}
	return nil
}
