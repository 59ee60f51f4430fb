package validation

import (
	"strings"

	"intentforge/internal/models"
)

// Attribute aliases tolerated during task sanitation. Oracles drift between
// these spellings; anything else fails.
var (
	idAliases         = []string{"id", "task_id", "identifier"}
	summaryAliases    = []string{"summary", "title", "description"}
	lastUpdateAliases = []string{"last_update", "lastUpdate", "notes"}
)

// sanitizeTasks coerces raw task objects into TaskRecords. Every record must
// end up with non-empty id, summary and last_update or sanitation fails.
func sanitizeTasks(raw []map[string]any) ([]models.TaskRecord, error) {
	tasks := make([]models.TaskRecord, 0, len(raw))
	for i, obj := range raw {
		id := firstString(obj, idAliases)
		if id == "" {
			return nil, errorf("task %d has no usable id (tried %s)", i, strings.Join(idAliases, "/"))
		}
		summary := firstString(obj, summaryAliases)
		if summary == "" {
			return nil, errorf("task %d (%s) has no usable summary (tried %s)", i, id, strings.Join(summaryAliases, "/"))
		}
		lastUpdate := firstString(obj, lastUpdateAliases)
		if lastUpdate == "" {
			return nil, errorf("task %d (%s) has no usable last_update (tried %s)", i, id, strings.Join(lastUpdateAliases, "/"))
		}
		tasks = append(tasks, models.TaskRecord{ID: id, Summary: summary, LastUpdate: lastUpdate})
	}
	return tasks, nil
}

// firstString returns the first alias that maps to a non-empty string,
// trimmed. Non-string values never match.
func firstString(obj map[string]any, aliases []string) string {
	for _, key := range aliases {
		if v, ok := obj[key]; ok {
			if s, ok := v.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					return trimmed
				}
			}
		}
	}
	return ""
}
