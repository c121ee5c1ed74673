package handlers

import (
	"net/http"

	"nyayamitra/services/intelligence"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssistantHandler serves the legal-assistant endpoints.
type AssistantHandler struct {
	AssistantService intelligence.AssistantService
}

type assistantChatRequest struct {
	ConversationID string `json:"conversationId"`
	Prompt         string `json:"prompt" binding:"required"`
}

// ChatHandler handles POST /api/assistant/chat.
func (h *AssistantHandler) ChatHandler(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	var req assistantChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reply, err := h.AssistantService.Chat(c.Request.Context(), userEmail, req.ConversationID, req.Prompt)
	if err != nil {
		getLogger(c).Error("Assistant chat failed", zap.String("email", userEmail), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Assistant is unavailable, please try again"})
		return
	}
	c.JSON(http.StatusOK, reply)
}

// ListConversationsHandler handles GET /api/assistant/conversations.
func (h *AssistantHandler) ListConversationsHandler(c *gin.Context) {
	userEmail := c.GetString("userEmail")

	convs, err := h.AssistantService.ListConversations(userEmail)
	if err != nil {
		getLogger(c).Error("Failed to list conversations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list conversations"})
		return
	}
	c.JSON(http.StatusOK, convs)
}

// MessagesHandler handles GET /api/assistant/conversations/:id.
func (h *AssistantHandler) MessagesHandler(c *gin.Context) {
	userEmail := c.GetString("userEmail")
	conversationID := c.Param("id")

	messages, err := h.AssistantService.GetMessages(userEmail, conversationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// DeleteConversationHandler handles DELETE /api/assistant/conversations/:id.
func (h *AssistantHandler) DeleteConversationHandler(c *gin.Context) {
	userEmail := c.GetString("userEmail")
	conversationID := c.Param("id")

	if err := h.AssistantService.DeleteConversation(c.Request.Context(), userEmail, conversationID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conversation deleted"})
}
