package chat

import (
	"encoding/json"
	"fmt"
	"net/http"

	"inventory-app/config"
	"inventory-app/database"
	"inventory-app/internal/agent/conversation"
	"inventory-app/internal/agent/tools"
	"inventory-app/internal/domain/users"
	"inventory-app/internal/i18n"
	"inventory-app/internal/llm"

	"github.com/gin-gonic/gin"
)

// maxAgentTurns bounds the tool-call loop for a single chat request so a
// misbehaving model cannot spin forever.
const maxAgentTurns = 8

const systemPromptEN = `You are the inventory assistant of an artist studio.
You answer questions about artworks, editions, locations and their history,
and you help the artist update edition records.

Rules:
- Use the provided tools to look up real data. Never invent inventory facts.
- Artwork titles may be in English or Chinese; pass the user's words through as-is.
- Before changing any edition, call generate_update_confirmation and present
  the confirmation card. Only call execute_edition_update after the user has
  explicitly confirmed.
- Answer in the language the user writes in.`

const systemPromptZH = systemPromptEN + `
- 用户界面语言为中文，如无特殊要求请用中文回答。`

type chatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages []chatMessage `json:"messages" binding:"required"`
	Locale   string        `json:"locale"`
	Stream   bool          `json:"stream"`
}

type toolResultDTO struct {
	Action string      `json:"action"`
	Result interface{} `json:"result"`
}

// POST /chat
func Chat(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "messages must not be empty"})
		return
	}

	locale := resolveLocale(c, userID, req.Locale)

	chatClient, err := llm.NewClientFromConfig(config.LLM_PROVIDER, config.CHAT_MODEL)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Chat model unavailable", "details": err.Error()})
		return
	}

	// Secondary models are optional; tools degrade without them.
	expansion, err := llm.NewClientFromConfig(config.LLM_PROVIDER, config.EXPANSION_MODEL)
	if err != nil {
		fmt.Println("❌ expansion model unavailable:", err)
		expansion = nil
	}
	extraction, err := llm.NewClientFromConfig(config.LLM_PROVIDER, config.EXTRACTION_MODEL)
	if err != nil {
		fmt.Println("❌ extraction model unavailable:", err)
		extraction = nil
	}

	tc := tools.NewContext(database.DB, userID, expansion, extraction, locale)
	reg := tools.NewRegistry(tc)

	history := make([]*llm.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		history = append(history, &llm.Message{Role: m.Role, Content: m.Content})
	}
	history = conversation.PruneHistory(history, conversation.DefaultTokenBudget)

	systemPrompt := systemPromptEN
	if locale == i18n.LocaleZH {
		systemPrompt = systemPromptZH
	}

	var toolResults []toolResultDTO

	for turn := 0; turn < maxAgentTurns; turn++ {
		resp, err := chatClient.CompleteWithRequest(c.Request.Context(), &llm.CompletionRequest{
			Messages:     history,
			Tools:        tools.Schemas(reg),
			SystemPrompt: systemPrompt,
		})
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Chat model request failed", "details": err.Error()})
			return
		}

		if len(resp.ToolCalls) == 0 {
			if req.Stream {
				streamResponse(c, resp.Content, toolResults)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"message":      resp.Content,
				"tool_results": toolResults,
			})
			return
		}

		history = append(history, &llm.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			id, name, args := parseToolCall(call)

			result, err := tools.Dispatch(c.Request.Context(), reg, name, args)
			if err != nil {
				// Only unknown actions reach here; echo it to the model so it
				// can correct itself on the next turn.
				result = map[string]interface{}{"error": err.Error()}
			}
			toolResults = append(toolResults, toolResultDTO{Action: name, Result: result})

			history = append(history, &llm.Message{
				Role:     "tool",
				Content:  tools.SummarizeResult(reg, name, result),
				ToolID:   id,
				ToolName: name,
			})
		}

		history = conversation.PruneHistory(history, conversation.DefaultTokenBudget)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      i18n.T(locale, "chat.turn_limit"),
		"tool_results": toolResults,
	})
}

// streamResponse replays the final assistant text as SSE chunks, then a
// single event carrying the tool results, then a done marker.
func streamResponse(c *gin.Context, content string, toolResults []toolResultDTO) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	runes := []rune(content)
	for start := 0; start < len(runes); start += streamChunkRunes {
		end := start + streamChunkRunes
		if end > len(runes) {
			end = len(runes)
		}
		c.SSEvent("message", string(runes[start:end]))
		c.Writer.Flush()
	}

	if len(toolResults) > 0 {
		c.SSEvent("tool_results", toolResults)
		c.Writer.Flush()
	}
	c.SSEvent("done", "")
	c.Writer.Flush()
}

const streamChunkRunes = 48

func parseToolCall(call map[string]interface{}) (id, name string, args map[string]interface{}) {
	id, _ = call["id"].(string)
	function, _ := call["function"].(map[string]interface{})
	if function == nil {
		return id, "", nil
	}
	name, _ = function["name"].(string)

	switch raw := function["arguments"].(type) {
	case string:
		if raw != "" {
			_ = json.Unmarshal([]byte(raw), &args)
		}
	case map[string]interface{}:
		args = raw
	}
	return id, name, args
}

// resolveLocale prefers the explicit request locale, then the stored user
// preference, then English.
func resolveLocale(c *gin.Context, userID uint, requested string) string {
	if requested != "" {
		return i18n.Normalize(requested)
	}
	var user users.User
	if err := database.DB.First(&user, userID).Error; err == nil && user.Locale != "" {
		return i18n.Normalize(user.Locale)
	}
	return i18n.LocaleEN
}
