package dataset

import (
	"encoding/json"
	"fmt"

	"intentforge/internal/models"
)

// LedgerHeader opens the second system turn, ahead of the serialized ledger.
const LedgerHeader = "Current task ledger:"

// SerializeLedger renders a task ledger snapshot for the second system turn:
// a fixed header line followed by the ledger as a JSON array.
func SerializeLedger(tasks []models.TaskRecord) (string, error) {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("serializing task ledger: %w", err)
	}
	return LedgerHeader + "\n" + string(raw), nil
}

// BuildRow converts a validated scenario into a dataset record. The
// conversation is exactly four turns: the grounding document, the serialized
// task ledger, the scenario's user text, and the assistant's final command
// carrying the reasoning as a thinking attachment rather than visible
// content.
func BuildRow(scenario models.Scenario, grounding string) (models.DatasetRow, error) {
	ledger, err := SerializeLedger(scenario.Tasks)
	if err != nil {
		return models.DatasetRow{}, err
	}

	final := scenario.Final.String()
	return models.DatasetRow{
		Developer: grounding,
		Tasks:     scenario.Tasks,
		User:      scenario.User,
		Reasoning: scenario.Reasoning,
		Final:     final,
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: grounding},
			{Role: models.RoleSystem, Content: ledger},
			{Role: models.RoleUser, Content: scenario.User},
			{Role: models.RoleAssistant, Content: final, Thinking: scenario.Reasoning},
		},
	}, nil
}

// BuildRows assembles one record per scenario, preserving order.
func BuildRows(scenarios []models.Scenario, grounding string) ([]models.DatasetRow, error) {
	rows := make([]models.DatasetRow, 0, len(scenarios))
	for _, s := range scenarios {
		row, err := BuildRow(s, grounding)
		if err != nil {
			return nil, fmt.Errorf("assembling row for job %s: %w", s.Job.ID(), err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
