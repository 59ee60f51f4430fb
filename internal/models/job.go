package models

import "fmt"

// PartitionConfig names one dataset partition and how many rows of each
// action kind it should contain. OutputID becomes part of the artifact file
// names (dataset-<output_id>.jsonl).
type PartitionConfig struct {
	Name      string `yaml:"name" json:"name"`
	PerAction int    `yaml:"per_action" json:"per_action"`
	OutputID  string `yaml:"output_id" json:"output_id"`
}

// Rows returns the total row count of the partition.
func (p PartitionConfig) Rows() int {
	return p.PerAction * len(Actions())
}

// Validate checks the partition is usable before any jobs are built.
func (p PartitionConfig) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("partition name must not be empty")
	}
	if p.OutputID == "" {
		return fmt.Errorf("partition %q: output_id must not be empty", p.Name)
	}
	if p.PerAction < 1 {
		return fmt.Errorf("partition %q: per_action must be at least 1, got %d", p.Name, p.PerAction)
	}
	return nil
}

// Job is one unit of scenario generation work. Jobs are built once by the
// job builder and never mutated afterwards.
type Job struct {
	Action      Action `json:"action"`
	Partition   string `json:"partition"`
	Theme       string `json:"theme"`
	Index       int    `json:"index"`        // per-action ordinal within the partition
	GlobalIndex int    `json:"global_index"` // unique across every partition of the invocation
	Style       string `json:"style"`
}

// ID returns a stable human-readable identifier used in logs and errors.
func (j Job) ID() string {
	return fmt.Sprintf("%s/%s-%d", j.Partition, j.Action, j.Index)
}
