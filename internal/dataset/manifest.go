package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"intentforge/internal/models"
)

// ManifestName is the manifest file written next to the artifacts.
const ManifestName = "manifest.json"

// PartitionManifest records what was written for one partition. Artifact
// names are stored relative to the manifest so the output directory can move
// as a unit.
type PartitionManifest struct {
	Name      string `json:"name"`
	Rows      int    `json:"rows"`
	PerAction int    `json:"per_action"`
	Merged    string `json:"merged"`
	Full      string `json:"full"`
}

// Manifest describes one generation run.
type Manifest struct {
	RunID      string              `json:"run_id"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
	Duration   string              `json:"duration"`
	Model      string              `json:"model"`
	Partitions []PartitionManifest `json:"partitions"`
}

// NewManifest stamps a manifest with a fresh run id and start time.
func NewManifest(model string) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Model:     model,
	}
}

// AddPartition appends one partition's outcome.
func (m *Manifest) AddPartition(p models.PartitionConfig, art Artifact) {
	m.Partitions = append(m.Partitions, PartitionManifest{
		Name:      p.Name,
		Rows:      p.Rows(),
		PerAction: p.PerAction,
		Merged:    filepath.Base(art.Merged),
		Full:      filepath.Base(art.Full),
	})
}

// Write stamps the finish time and persists the manifest as indented JSON
// under dir, returning its path.
func (m *Manifest) Write(dir string) (string, error) {
	m.FinishedAt = time.Now().UTC()
	m.Duration = m.FinishedAt.Sub(m.StartedAt).Round(time.Millisecond).String()
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, append(raw, '\n'), 0644); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}
	return path, nil
}

// ReadManifest loads a manifest written by a previous run.
func ReadManifest(dir string) (*Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return &m, nil
}
