package models

// TaskRecord is one ongoing unit of work visible to a scenario, a snapshot
// entry in the task ledger.
type TaskRecord struct {
	ID         string `json:"id"`
	Summary    string `json:"summary"`
	LastUpdate string `json:"last_update"`
}

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one conversation turn. Thinking carries rationale that is
// attached out of band rather than shown as visible content.
type Message struct {
	Content  string `json:"content"`
	Role     Role   `json:"role"`
	Thinking string `json:"thinking,omitempty"`
}

// Scenario is a validated generation result: the oracle's payload after
// sanitation and grammar checks, still bound to the job that produced it.
// Produced at most once per successful attempt; discarded when validation
// fails.
type Scenario struct {
	Job       Job
	User      string
	Tasks     []TaskRecord
	Reasoning string
	Final     Command
}

// DatasetRow is the canonical persisted record. Developer, Tasks, User,
// Reasoning and Final mirror the message turns for direct inspection;
// Messages is the ordered conversation consumed by fine-tuning.
type DatasetRow struct {
	Developer string       `json:"developer"`
	Tasks     []TaskRecord `json:"tasks"`
	User      string       `json:"user"`
	Reasoning string       `json:"reasoning"`
	Final     string       `json:"final"`
	Messages  []Message    `json:"messages"`
}
