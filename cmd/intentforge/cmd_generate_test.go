package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intentforge/internal/config"
	"intentforge/internal/dataset"
	"intentforge/internal/models"
)

func TestGenerateCommand_MockEndToEnd(t *testing.T) {
	pinEnv(t)
	out := filepath.Join(t.TempDir(), "run")

	output, err := runCommand(t,
		"generate", "--mock", "--rows", "25", "--out", out, "--seed", "7", "--quiet",
	)
	require.NoError(t, err)
	assert.Contains(t, output, "Executor: mock")
	assert.Contains(t, output, "GENERATION COMPLETE")

	full, err := dataset.ReadRows(filepath.Join(out, "dataset-custom-full.jsonl"))
	require.NoError(t, err)
	require.Len(t, full, 25)

	// An even split: 25 rows over five actions is five rows each.
	perAction := map[string]int{}
	for _, row := range full {
		require.Len(t, row.Messages, 4)
		assert.Equal(t, models.RoleSystem, row.Messages[0].Role)
		assert.Equal(t, models.RoleSystem, row.Messages[1].Role)
		assert.Equal(t, models.RoleUser, row.Messages[2].Role)
		assert.Equal(t, models.RoleAssistant, row.Messages[3].Role)

		verb, _, _ := strings.Cut(row.Final, "(")
		perAction[verb]++
	}
	for _, action := range models.Actions() {
		assert.Equal(t, 5, perAction[string(action)], "rows for %s", action)
	}

	merged, err := dataset.ReadRows(filepath.Join(out, "dataset-custom.jsonl"))
	require.NoError(t, err)
	require.Len(t, merged, 25)
	for _, row := range merged {
		assert.Len(t, row.Messages, 3)
	}

	manifest, err := dataset.ReadManifest(out)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultModel, manifest.Model)
	require.Len(t, manifest.Partitions, 1)
	assert.Equal(t, "custom", manifest.Partitions[0].Name)
	assert.Equal(t, 25, manifest.Partitions[0].Rows)
	assert.Contains(t, output, manifest.RunID)
}

func TestGenerateCommand_ProfilePartitions(t *testing.T) {
	pinEnv(t)
	dir := t.TempDir()
	profilePath := filepath.Join(dir, config.ProfileName)
	profileYAML := `executor: mock
partitions:
  - name: train
    per_action: 2
    output_id: train
  - name: test
    per_action: 1
    output_id: test
`
	require.NoError(t, os.WriteFile(profilePath, []byte(profileYAML), 0o644))

	out := filepath.Join(dir, "run")
	output, err := runCommand(t, "generate", "--profile", profilePath, "--out", out, "--quiet")
	require.NoError(t, err)
	assert.Contains(t, output, "Partitions: 2 (15 rows total)")

	train, err := dataset.ReadRows(filepath.Join(out, "dataset-train.jsonl"))
	require.NoError(t, err)
	assert.Len(t, train, 10)

	test, err := dataset.ReadRows(filepath.Join(out, "dataset-test.jsonl"))
	require.NoError(t, err)
	assert.Len(t, test, 5)

	manifest, err := dataset.ReadManifest(out)
	require.NoError(t, err)
	require.Len(t, manifest.Partitions, 2)
}

func TestGenerateCommand_Compressed(t *testing.T) {
	pinEnv(t)
	out := filepath.Join(t.TempDir(), "run")

	_, err := runCommand(t, "generate", "--mock", "--rows", "5", "--out", out, "--compress", "--quiet")
	require.NoError(t, err)

	manifest, err := dataset.ReadManifest(out)
	require.NoError(t, err)
	require.Len(t, manifest.Partitions, 1)
	assert.Equal(t, "dataset-custom.jsonl.gz", manifest.Partitions[0].Merged)
	assert.Equal(t, "dataset-custom-full.jsonl.gz", manifest.Partitions[0].Full)

	rows, err := dataset.ReadRows(filepath.Join(out, manifest.Partitions[0].Full))
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestGenerateCommand_RowsTooSmall(t *testing.T) {
	pinEnv(t)
	out := filepath.Join(t.TempDir(), "run")

	_, err := runCommand(t, "generate", "--mock", "--rows", "3", "--out", out, "--quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too small")
	assert.NoDirExists(t, out)
}

func TestGenerateCommand_RequiresCredential(t *testing.T) {
	pinEnv(t)
	dir := t.TempDir()
	profilePath := filepath.Join(dir, config.ProfileName)
	require.NoError(t, os.WriteFile(profilePath, []byte("executor: http\n"), 0o644))

	out := filepath.Join(dir, "run")
	_, err := runCommand(t, "generate", "--profile", profilePath, "--out", out, "--quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvAPIKey)
	assert.NoDirExists(t, out)
}
