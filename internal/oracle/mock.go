package oracle

import (
	"context"
	"encoding/json"
	"fmt"

	"intentforge/internal/models"
)

// Mock is an offline Generator that fabricates deterministic, grammatically
// valid payloads. It backs --mock runs and any test that needs a working
// oracle without network access.
type Mock struct{}

// NewMock returns the offline generator.
func NewMock() *Mock { return &Mock{} }

type mockPayload struct {
	User      string              `json:"user"`
	Tasks     []models.TaskRecord `json:"tasks"`
	Reasoning string              `json:"reasoning"`
	Final     string              `json:"final"`
}

// Generate fabricates a payload for the job. The ledger size, task ids and
// final command are derived from the job so every action kind validates.
func (m *Mock) Generate(ctx context.Context, job models.Job) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count := job.Action.MinTasks() + job.Index%2
	tasks := make([]models.TaskRecord, count)
	for i := range tasks {
		tasks[i] = models.TaskRecord{
			ID:         fmt.Sprintf("task-%d", i+1),
			Summary:    fmt.Sprintf("Handle %s item %d", job.Theme, i+1),
			LastUpdate: fmt.Sprintf("Touched during scenario %d", job.GlobalIndex),
		}
	}

	var final models.Command
	switch job.Action {
	case models.ActionReply:
		final = models.NewReply(fmt.Sprintf("Here is where things stand with %s.", job.Theme))
	case models.ActionStartTask:
		final = models.NewStartTask(fmt.Sprintf("Look into %s", job.Theme))
	case models.ActionUpdateTask:
		final = models.NewUpdateTask("task-1", fmt.Sprintf("made progress on %s", job.Theme))
	case models.ActionCancelTask:
		final = models.NewCancelTask("task-2", "no longer needed")
	case models.ActionNoop:
		final = models.NewNoop()
	default:
		return nil, fmt.Errorf("mock oracle: unknown action %q", job.Action)
	}

	payload := mockPayload{
		User:      fmt.Sprintf("(%s) Quick one about %s.", job.Style, job.Theme),
		Tasks:     tasks,
		Reasoning: fmt.Sprintf("The message concerns %s. Given the ledger, the right call is %s.", job.Theme, job.Action),
		Final:     final.String(),
	}
	return json.Marshal(payload)
}
