// Package prompts holds the fixed priming context sent with every oracle
// request and renders the per-job scenario instructions.
package prompts

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"intentforge/internal/models"
)

//go:embed grounding.md
var groundingDoc string

// GeneratorInstructions is the first priming turn: it puts the oracle in
// scenario-writer role and pins the JSON contract of its answers.
const GeneratorInstructions = `You write training scenarios for a personal task assistant's intent layer.
The next message describes the assistant you are generating data for; study
it, then produce scenarios that exercise its decision rules.

For every request you return ONE JSON object and nothing else:

{
  "user": "the user's message, written in the requested style",
  "tasks": [{"id": "...", "summary": "...", "last_update": "..."}],
  "reasoning": "2-4 sentences deciding which action applies and why",
  "final": "the single command the assistant should emit"
}

Rules:
- Task ids look like task-1, task-2, ... and must be unique.
- The ledger must be plausible standalone work, not derived from the user message.
- reasoning must weigh the ledger against the message before choosing.
- final must follow the command grammar exactly; no surrounding prose.
- Respond with the JSON object only. A fenced ` + "```json" + ` block is acceptable.`

// Grounding returns the assistant grounding document: the second priming
// turn for the oracle and the developer prompt stored in every dataset row.
func Grounding() string {
	return strings.TrimSpace(groundingDoc)
}

// LoadGrounding reads a replacement grounding document from disk and
// verifies it carries the structure generation depends on.
func LoadGrounding(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading grounding document: %w", err)
	}
	if err := VerifyDoc(data); err != nil {
		return "", fmt.Errorf("grounding document %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// grammarHint spells out the final-command grammar the scenario must target.
func grammarHint(a models.Action) string {
	switch a {
	case models.ActionReply:
		return `"final" must be reply(<the assistant's answer text>)`
	case models.ActionStartTask:
		return `"final" must be start_task(<one-line description of the new task>)`
	case models.ActionUpdateTask:
		return `"final" must be update_task(<id of a task from "tasks">, <progress note>)`
	case models.ActionCancelTask:
		return `"final" must be cancel_task(<id of a task from "tasks">, <why it ends>)`
	case models.ActionNoop:
		return `"final" must be exactly the word noop`
	}
	return ""
}

// RenderScenario builds the per-job user turn: theme, target action, ledger
// size requirement, style and the grammar the final string must satisfy.
func RenderScenario(job models.Job) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate scenario #%d.\n\n", job.GlobalIndex)
	fmt.Fprintf(&b, "Theme: %s.\n", job.Theme)
	fmt.Fprintf(&b, "Target action: the correct decision for this scenario is %s.\n", job.Action)
	if n := job.Action.MinTasks(); n > 1 {
		fmt.Fprintf(&b, "The task ledger must contain at least %d tasks so the choice is non-trivial.\n", n)
	} else {
		b.WriteString("The task ledger must contain at least 1 task.\n")
	}
	fmt.Fprintf(&b, "Write the user message in a %s style.\n", job.Style)
	b.WriteString(grammarHint(job.Action))
	return b.String()
}
