// Package validation turns raw oracle payloads into validated scenarios,
// enforcing the structural and grammar invariants of the dataset.
package validation

import (
	"encoding/json"
	"strings"

	"intentforge/internal/models"
)

type rawPayload struct {
	User      string           `json:"user"`
	Tasks     []map[string]any `json:"tasks"`
	Reasoning string           `json:"reasoning"`
	Final     string           `json:"final"`
}

// Validate applies the stage sequence to an extracted payload: coarse shape,
// task sanitation, task-count and uniqueness invariants, reasoning
// non-emptiness, and the action's final-command grammar. Every failure is a
// *ValidationError; the scheduler treats them as retryable.
func Validate(job models.Job, raw json.RawMessage) (models.Scenario, error) {
	if err := checkShape(raw); err != nil {
		return models.Scenario{}, err
	}

	var payload rawPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return models.Scenario{}, &ValidationError{Reason: "payload does not decode", Err: err}
	}

	tasks, err := sanitizeTasks(payload.Tasks)
	if err != nil {
		return models.Scenario{}, err
	}

	if len(tasks) == 0 {
		return models.Scenario{}, errorf("scenario has no tasks")
	}
	if n := job.Action.MinTasks(); len(tasks) < n {
		return models.Scenario{}, errorf("action %s needs at least %d tasks, got %d", job.Action, n, len(tasks))
	}

	seen := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		if seen[task.ID] {
			return models.Scenario{}, errorf("duplicate task id %q", task.ID)
		}
		seen[task.ID] = true
	}

	reasoning := strings.TrimSpace(payload.Reasoning)
	if reasoning == "" {
		return models.Scenario{}, errorf("reasoning must not be empty")
	}

	cmd, err := models.ParseCommand(job.Action, payload.Final)
	if err != nil {
		return models.Scenario{}, &ValidationError{Reason: "final grammar", Err: err}
	}
	if job.Action.ReferencesTask() && !seen[cmd.TaskID] {
		return models.Scenario{}, errorf("%s final %q references task %q which is not in the ledger", job.Action, payload.Final, cmd.TaskID)
	}

	return models.Scenario{
		Job:       job,
		User:      payload.User,
		Tasks:     tasks,
		Reasoning: reasoning,
		Final:     cmd,
	}, nil
}
