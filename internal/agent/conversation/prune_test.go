package conversation

import (
	"strings"
	"testing"

	"inventory-app/internal/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msg(role, content string) *llm.Message {
	return &llm.Message{Role: role, Content: content}
}

func toolCallMsg(content string) *llm.Message {
	return &llm.Message{
		Role:    "assistant",
		Content: content,
		ToolCalls: []map[string]interface{}{
			{"id": "call_1", "type": "function", "function": map[string]interface{}{
				"name": "search_artworks", "arguments": `{"query":"echo"}`,
			}},
		},
	}
}

func toolResultMsg(content string) *llm.Message {
	return &llm.Message{Role: "tool", Content: content, ToolID: "call_1", ToolName: "search_artworks"}
}

func TestPruneKeepsRecentToolTraffic(t *testing.T) {
	history := []*llm.Message{
		msg("user", "find echo"),
		toolCallMsg(""),
		toolResultMsg("Found 1 artworks"),
		msg("assistant", "You have one edition of Echo."),
		msg("user", "what about sunrise"),
		toolCallMsg(""),
		toolResultMsg("Found 2 artworks"),
		msg("assistant", "Two sunrise artworks."),
		msg("user", "sell edition 1"),
	}

	pruned := PruneHistory(history, DefaultTokenBudget)

	// Tool traffic from before the second-to-last user turn is gone.
	for i, m := range pruned {
		if i < len(pruned)-5 {
			assert.NotEqual(t, "tool", m.Role)
			assert.Empty(t, m.ToolCalls)
		}
	}
	// The stale tool-call assistant message with no text vanishes entirely;
	// recent traffic survives.
	roles := make([]string, 0, len(pruned))
	for _, m := range pruned {
		roles = append(roles, m.Role)
	}
	assert.Equal(t, []string{"user", "assistant", "user", "assistant", "tool", "assistant", "user"}, roles)
}

func TestPruneStripsStaleCallsButKeepsAssistantText(t *testing.T) {
	history := []*llm.Message{
		msg("user", "find echo"),
		toolCallMsg("Let me look that up."),
		toolResultMsg("Found 1 artworks"),
		msg("user", "thanks"),
		msg("user", "now sunrise"),
	}

	pruned := PruneHistory(history, DefaultTokenBudget)

	require.Len(t, pruned, 4)
	assert.Equal(t, "Let me look that up.", pruned[1].Content)
	assert.Empty(t, pruned[1].ToolCalls)
}

func TestPruneRetainsAnchorUnderPressure(t *testing.T) {
	big := strings.Repeat("词", 600) // ~200 estimated tokens each
	history := []*llm.Message{msg("user", "task framing: manage my studio inventory")}
	for i := 0; i < 50; i++ {
		history = append(history, msg("assistant", big), msg("user", big))
	}

	budget := 1000
	pruned := PruneHistory(history, budget)

	require.NotEmpty(t, pruned)
	assert.Equal(t, "task framing: manage my studio inventory", pruned[0].Content)
	assert.LessOrEqual(t, EstimateHistoryTokens(pruned), budget)
	// The most recent message always survives.
	assert.Same(t, history[len(history)-1], pruned[len(pruned)-1])
}

func TestPruneMonotonicShrink(t *testing.T) {
	history := []*llm.Message{msg("user", "anchor")}
	for i := 0; i < 20; i++ {
		history = append(history, msg("assistant", strings.Repeat("x", 300)))
	}

	prev := EstimateHistoryTokens(history)
	for _, budget := range []int{2000, 1200, 600, 200} {
		pruned := PruneHistory(history, budget)
		got := EstimateHistoryTokens(pruned)
		assert.LessOrEqual(t, got, prev)
		prev = got
	}
}

func TestPruneNoopUnderBudget(t *testing.T) {
	history := []*llm.Message{
		msg("user", "hello"),
		msg("assistant", "hi"),
	}
	pruned := PruneHistory(history, DefaultTokenBudget)
	assert.Equal(t, history, pruned)
}

func TestPruneDropsEmptyMessages(t *testing.T) {
	history := []*llm.Message{
		msg("user", "hello"),
		msg("assistant", ""),
		nil,
		msg("assistant", "hi"),
	}
	pruned := PruneHistory(history, DefaultTokenBudget)
	require.Len(t, pruned, 2)
	assert.Equal(t, "hello", pruned[0].Content)
	assert.Equal(t, "hi", pruned[1].Content)
}
