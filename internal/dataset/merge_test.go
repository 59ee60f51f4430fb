package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intentforge/internal/models"
)

func TestMergeCollapsesAssembledRow(t *testing.T) {
	row, err := BuildRow(sampleScenario(models.ActionCancelTask, 3), "grounding doc")
	require.NoError(t, err)

	merged := MergeMessages(row.Messages)
	require.Len(t, merged, 3)

	assert.Equal(t, models.RoleSystem, merged[0].Role)
	assert.Equal(t, "grounding doc\n"+row.Messages[1].Content, merged[0].Content)
	assert.Empty(t, merged[0].Thinking)

	assert.Equal(t, models.RoleUser, merged[1].Role)
	assert.Equal(t, row.User, merged[1].Content)

	assert.Equal(t, models.RoleAssistant, merged[2].Role)
	assert.Equal(t, row.Final, merged[2].Content)
	assert.Equal(t, row.Reasoning, merged[2].Thinking)
}

func TestMergeIdempotent(t *testing.T) {
	row, err := BuildRow(sampleScenario(models.ActionReply, 1), "doc")
	require.NoError(t, err)

	once := MergeMessages(row.Messages)
	twice := MergeMessages(once)
	assert.Equal(t, once, twice)
}

func TestMergeCombinesThinking(t *testing.T) {
	in := []models.Message{
		{Role: models.RoleAssistant, Content: "a", Thinking: "first"},
		{Role: models.RoleAssistant, Content: "b", Thinking: "second"},
	}
	merged := MergeMessages(in)
	require.Len(t, merged, 1)
	assert.Equal(t, "a\nb", merged[0].Content)
	assert.Equal(t, "first\nsecond", merged[0].Thinking)
}

func TestMergeEmptyThinkingStaysAbsent(t *testing.T) {
	in := []models.Message{
		{Role: models.RoleSystem, Content: "a"},
		{Role: models.RoleSystem, Content: "b"},
	}
	merged := MergeMessages(in)
	require.Len(t, merged, 1)
	assert.Equal(t, "a\nb", merged[0].Content)
	assert.Empty(t, merged[0].Thinking)
}

func TestMergeRunOfThree(t *testing.T) {
	in := []models.Message{
		{Role: models.RoleSystem, Content: "a"},
		{Role: models.RoleSystem, Content: "b", Thinking: "only"},
		{Role: models.RoleSystem, Content: "c"},
		{Role: models.RoleUser, Content: "q"},
	}
	merged := MergeMessages(in)
	require.Len(t, merged, 2)
	assert.Equal(t, "a\nb\nc", merged[0].Content)
	assert.Equal(t, "only", merged[0].Thinking)
	assert.Equal(t, models.RoleUser, merged[1].Role)
}

func TestMergeNil(t *testing.T) {
	assert.Nil(t, MergeMessages(nil))
}
