package config

import (
	"fmt"

	"intentforge/internal/models"
)

// DefaultPartitions returns the standard split: a train partition sized
// DefaultTotalRows/action_count per action and a test partition sized one
// tenth of that.
func DefaultPartitions() []models.PartitionConfig {
	perAction := DefaultTotalRows / len(models.Actions())
	return []models.PartitionConfig{
		{Name: "train", PerAction: perAction, OutputID: "train"},
		{Name: "test", PerAction: perAction / 10, OutputID: "test"},
	}
}

// OverridePartition builds the single partition that replaces the configured
// split when the CLI requests an explicit row count. The per-action count is
// the floor of rows/action_count; a floor of zero means the request cannot
// cover every action at least once and is rejected before any job is built.
func OverridePartition(rows int) (models.PartitionConfig, error) {
	actionCount := len(models.Actions())
	perAction := rows / actionCount
	if perAction < 1 {
		return models.PartitionConfig{}, fmt.Errorf(
			"row override %d is too small: need at least %d rows to cover every action once", rows, actionCount)
	}
	return models.PartitionConfig{Name: "custom", PerAction: perAction, OutputID: "custom"}, nil
}
