package models

// Action is the intent decision a generated scenario must resolve to.
type Action string

const (
	ActionReply      Action = "reply"
	ActionStartTask  Action = "start_task"
	ActionUpdateTask Action = "update_task"
	ActionCancelTask Action = "cancel_task"
	ActionNoop       Action = "noop"
)

// Actions returns every action kind in canonical order.
func Actions() []Action {
	return []Action{ActionReply, ActionStartTask, ActionUpdateTask, ActionCancelTask, ActionNoop}
}

// Valid reports whether a is one of the five known action kinds.
func (a Action) Valid() bool {
	switch a {
	case ActionReply, ActionStartTask, ActionUpdateTask, ActionCancelTask, ActionNoop:
		return true
	}
	return false
}

// ReferencesTask reports whether the action's final command must name an
// existing task id (update_task and cancel_task).
func (a Action) ReferencesTask() bool {
	return a == ActionUpdateTask || a == ActionCancelTask
}

// MinTasks returns the minimum ledger size a scenario for this action must
// carry. Actions that operate on (or deliberately ignore) existing work need
// at least two tasks so the choice is non-trivial.
func (a Action) MinTasks() int {
	switch a {
	case ActionUpdateTask, ActionCancelTask, ActionNoop:
		return 2
	default:
		return 1
	}
}
