package query

import (
	"errors"
	"net/http"
	"time"

	"inventory-app/config"
	"inventory-app/database"
	"inventory-app/internal/agent/tools"
	"inventory-app/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type queryRequest struct {
	Action string                 `json:"action" binding:"required"`
	Params map[string]interface{} `json:"params"`
	Locale string                 `json:"locale"`
}

func corsHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, X-API-Key")
}

// OPTIONS /api/query
func Preflight(c *gin.Context) {
	corsHeaders(c)
	c.Status(http.StatusNoContent)
}

// POST /api/query
//
// External read-only surface. Key auth and CORS happen in
// middleware.RequireAPIKey; this handler is restricted to the
// allow-listed search/statistics actions, so no mutating tool is
// reachable from here regardless of the requested action name.
func Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "INVALID_REQUEST",
			"details": err.Error(),
		})
		return
	}

	// No model clients here: search-term expansion degrades to the literal
	// term, and nothing on this surface can fetch URLs.
	tc := tools.NewContext(database.DB, config.QUERY_USER_ID, nil, nil, i18n.Normalize(req.Locale))
	reg := tools.NewReadOnlyRegistry(tc)

	result, err := tools.Dispatch(c.Request.Context(), reg, req.Action, req.Params)
	if err != nil {
		var invalid *tools.InvalidActionError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":       false,
				"error":         "INVALID_ACTION",
				"action":        invalid.Action,
				"valid_actions": invalid.Valid,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "QUERY_ERROR",
			"message": err.Error(),
		})
		return
	}

	// Dispatch recovers execution failures into {"error": ...} so the chat
	// model can react conversationally. On this surface they are server
	// errors and must not ride in a success envelope.
	if m, ok := result.(map[string]interface{}); ok {
		if msg, ok := m["error"].(string); ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "QUERY_ERROR",
				"message": msg,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"action":  req.Action,
		"data":    result,
		"meta": gin.H{
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"request_id": uuid.NewString(),
		},
	})
}
