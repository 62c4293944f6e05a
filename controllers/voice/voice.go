package voiceControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sn0wstorm20202/blinkit-clone/voice"
)

// POST /api/voice-agent
//
// Interprets an utterance, executes the resulting action, and returns both
// the agent's envelope and the execution result in one response.
func VoiceAgentHandler(agent *voice.Agent, dispatcher *voice.Dispatcher, limiter voice.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		if !limiter.Allow(userID) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Please try again later.", "code": "RATE_LIMIT"})
			return
		}

		var req voice.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "code": "INVALID_BODY"})
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required", "code": "MISSING_TEXT"})
			return
		}
		if req.Language == "" {
			req.Language = "en-US"
		}

		env := agent.Interpret(c.Request.Context(), userID, req)
		result := dispatcher.Dispatch(userID, env)

		c.JSON(http.StatusOK, gin.H{
			"action":            env.Action,
			"params":            env.Params,
			"response":          env.Response,
			"conversationState": env.ConversationState,
			"confidence":        env.Confidence,
			"result":            result,
		})
	}
}
