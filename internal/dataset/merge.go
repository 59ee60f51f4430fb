package dataset

import "intentforge/internal/models"

// MergeMessages collapses runs of adjacent same-role turns into one turn.
// Contents are joined with a newline, thinking attachments likewise, and a
// run whose thinking parts are all empty yields no attachment. The assembler
// always emits two consecutive system turns, which downstream fine-tuning
// consumers expect collapsed into one. Merging an already merged sequence
// returns it unchanged.
func MergeMessages(messages []models.Message) []models.Message {
	if len(messages) == 0 {
		return nil
	}

	merged := make([]models.Message, 0, len(messages))
	for _, m := range messages {
		if n := len(merged); n > 0 && merged[n-1].Role == m.Role {
			prev := &merged[n-1]
			prev.Content = joinParts(prev.Content, m.Content)
			prev.Thinking = joinParts(prev.Thinking, m.Thinking)
			continue
		}
		merged = append(merged, m)
	}
	return merged
}

// joinParts joins two message fragments with a newline, dropping empty
// sides rather than emitting stray separators.
func joinParts(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "\n" + b
	}
}
