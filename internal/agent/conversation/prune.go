// Package conversation keeps chat histories within the token budget the
// underlying model can usefully consume.
package conversation

import "inventory-app/internal/llm"

// DefaultTokenBudget is the ceiling (in estimated tokens) a pruned
// history may occupy before being handed to the model.
const DefaultTokenBudget = 100_000

// PruneHistory trims a message history to fit the given token budget.
//
// Pass 1 drops tool-call/result traffic older than the last two user
// turns, plus empty messages. Pass 2, if the estimate still exceeds the
// budget, always retains the first message (the task framing) and the
// most recent ones, dropping from the second-oldest position forward
// until the estimate fits or only one recent message remains.
func PruneHistory(messages []*llm.Message, budget int) []*llm.Message {
	if budget <= 0 {
		budget = DefaultTokenBudget
	}

	pruned := dropStaleToolTraffic(messages)
	if estimate(pruned) <= budget {
		return pruned
	}

	kept := append([]*llm.Message(nil), pruned...)
	for estimate(kept) > budget && len(kept) > 2 {
		kept = append(kept[:1], kept[2:]...)
	}
	return kept
}

// EstimateHistoryTokens returns the summed token estimate for a history.
func EstimateHistoryTokens(messages []*llm.Message) int {
	return estimate(messages)
}

func estimate(messages []*llm.Message) int {
	total := 0
	for _, msg := range messages {
		total += llm.EstimateTokenCountForMessage(msg)
	}
	return total
}

func dropStaleToolTraffic(messages []*llm.Message) []*llm.Message {
	cutoff := recentTurnStart(messages)

	out := make([]*llm.Message, 0, len(messages))
	for i, msg := range messages {
		if msg == nil {
			continue
		}
		if i < cutoff {
			if msg.Role == "tool" {
				continue
			}
			if len(msg.ToolCalls) > 0 {
				if msg.Content == "" {
					continue
				}
				// Keep the assistant text, strip the stale call.
				trimmed := *msg
				trimmed.ToolCalls = nil
				msg = &trimmed
			}
		}
		if msg.Content == "" && len(msg.ToolCalls) == 0 {
			continue
		}
		out = append(out, msg)
	}
	return out
}

// recentTurnStart returns the index of the second-to-last user message,
// the boundary behind which tool traffic is considered stale.
func recentTurnStart(messages []*llm.Message) int {
	turns := 0
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i] != nil && messages[i].Role == "user" {
			turns++
			if turns == 2 {
				return i
			}
		}
	}
	return 0
}
