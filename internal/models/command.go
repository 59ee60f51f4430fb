package models

import (
	"fmt"
	"strings"
)

// Command is the typed form of a scenario's final intent string. Exactly one
// argument set is populated depending on Action: Text for reply/start_task,
// TaskID and Note for update_task/cancel_task, nothing for noop.
type Command struct {
	Action Action
	Text   string
	TaskID string
	Note   string
}

// NewReply builds a reply(text) command.
func NewReply(text string) Command {
	return Command{Action: ActionReply, Text: text}
}

// NewStartTask builds a start_task(text) command.
func NewStartTask(text string) Command {
	return Command{Action: ActionStartTask, Text: text}
}

// NewUpdateTask builds an update_task(id, note) command.
func NewUpdateTask(taskID, note string) Command {
	return Command{Action: ActionUpdateTask, TaskID: taskID, Note: note}
}

// NewCancelTask builds a cancel_task(id, note) command.
func NewCancelTask(taskID, note string) Command {
	return Command{Action: ActionCancelTask, TaskID: taskID, Note: note}
}

// NewNoop builds the bare noop command.
func NewNoop() Command {
	return Command{Action: ActionNoop}
}

// String renders the canonical surface grammar consumed downstream:
// verb(arg) for single-argument actions, verb(id, note) for two-argument
// actions, and the bare literal noop.
func (c Command) String() string {
	switch c.Action {
	case ActionReply, ActionStartTask:
		return string(c.Action) + "(" + c.Text + ")"
	case ActionUpdateTask, ActionCancelTask:
		return string(c.Action) + "(" + c.TaskID + ", " + c.Note + ")"
	case ActionNoop:
		return "noop"
	}
	return ""
}

// ParseCommand parses a final string against the grammar of the given
// action. The accepted forms are:
//
//	reply(<text>)
//	start_task(<text>)
//	update_task(<task id>, <note>)
//	cancel_task(<task id>, <note>)
//	noop
//
// Single-argument text is kept verbatim; two-argument forms split on the
// first comma, trimming both pieces. The returned Command re-renders to the
// canonical surface string via String.
func ParseCommand(action Action, s string) (Command, error) {
	if action == ActionNoop {
		if s != "noop" {
			return Command{}, fmt.Errorf("noop final must be the literal %q, got %q", "noop", s)
		}
		return NewNoop(), nil
	}

	prefix := string(action) + "("
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, ")") {
		return Command{}, fmt.Errorf("%s final must look like %s...), got %q", action, prefix, s)
	}
	inner := s[len(prefix) : len(s)-1]

	switch action {
	case ActionReply:
		return NewReply(inner), nil
	case ActionStartTask:
		return NewStartTask(inner), nil
	case ActionUpdateTask, ActionCancelTask:
		comma := strings.Index(inner, ",")
		if comma < 0 {
			return Command{}, fmt.Errorf("%s final needs two arguments (task id, note), got %q", action, s)
		}
		id := strings.TrimSpace(inner[:comma])
		note := strings.TrimSpace(inner[comma+1:])
		if id == "" {
			return Command{}, fmt.Errorf("%s final has an empty task id: %q", action, s)
		}
		if action == ActionUpdateTask {
			return NewUpdateTask(id, note), nil
		}
		return NewCancelTask(id, note), nil
	}
	return Command{}, fmt.Errorf("unknown action %q", action)
}
