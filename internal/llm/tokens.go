package llm

// charsPerToken is a conservative character-to-token divisor for mixed
// Latin/CJK text. CJK characters tokenize close to one token each, so
// this sits well below the ~4 chars/token typical of pure English.
const charsPerToken = 3

// EstimateTokenCount returns a rough token estimate for the provided content.
func EstimateTokenCount(content string) int {
	return charsToTokens(len(content))
}

// EstimateTokenCountForMessage returns the token estimate for a single message's content.
func EstimateTokenCountForMessage(msg *Message) int {
	if msg == nil {
		return 0
	}
	return EstimateTokenCount(msg.Content)
}

func charsToTokens(chars int) int {
	if chars <= 0 {
		return 0
	}
	tokens := chars / charsPerToken
	if tokens <= 0 {
		tokens = 1
	}
	return tokens
}
