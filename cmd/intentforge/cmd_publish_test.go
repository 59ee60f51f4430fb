package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishCommand_RequiresFlags(t *testing.T) {
	_, err := runCommand(t, "publish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--account and --container are required")

	_, err = runCommand(t, "publish", "--account", "https://acct.blob.core.windows.net")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--container")
}

func TestPublishCommand_VerifyFailsFast(t *testing.T) {
	// An empty run directory has no manifest, so --verify must reject it
	// before any uploader is constructed.
	dir := t.TempDir()
	_, err := runCommand(t, "publish", dir,
		"--account", "https://acct.blob.core.windows.net",
		"--container", "datasets",
		"--verify")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verifying")
}
