package dataset

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intentforge/internal/models"
)

func TestManifestWriteAndRead(t *testing.T) {
	dir := t.TempDir()

	m := NewManifest("deepseek-ai/DeepSeek-V3")
	_, err := uuid.Parse(m.RunID)
	require.NoError(t, err)

	p := models.PartitionConfig{Name: "train", PerAction: 2, OutputID: "train"}
	m.AddPartition(p, Artifact{
		Merged: filepath.Join(dir, "dataset-train.jsonl"),
		Full:   filepath.Join(dir, "dataset-train-full.jsonl"),
	})

	path, err := m.Write(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ManifestName), path)

	got, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, m.RunID, got.RunID)
	assert.Equal(t, "deepseek-ai/DeepSeek-V3", got.Model)
	assert.False(t, got.FinishedAt.IsZero())
	assert.False(t, got.FinishedAt.Before(got.StartedAt))
	assert.NotEmpty(t, got.Duration)
	require.Len(t, got.Partitions, 1)
	assert.Equal(t, "train", got.Partitions[0].Name)
	assert.Equal(t, 10, got.Partitions[0].Rows)
	assert.Equal(t, "dataset-train.jsonl", got.Partitions[0].Merged)
	assert.Equal(t, "dataset-train-full.jsonl", got.Partitions[0].Full)
}

func TestReadManifestMissing(t *testing.T) {
	_, err := ReadManifest(t.TempDir())
	require.Error(t, err)
}
