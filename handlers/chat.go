package handlers

import (
	"net/http"

	chatService "nyayamitra/services/chat"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler serves the direct-messaging endpoints.
type ChatHandler struct {
	ChatService chatService.ChatService
}

type sendMessageRequest struct {
	ToEmail string `json:"toEmail" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// SendMessageHandler handles POST /api/chat/messages.
func (h *ChatHandler) SendMessageHandler(c *gin.Context) {
	fromEmail := c.GetString("userEmail")

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	msg, err := h.ChatService.SendMessage(fromEmail, req.ToEmail, req.Body)
	if err != nil {
		getLogger(c).Error("Failed to send message",
			zap.String("from", fromEmail), zap.String("to", req.ToEmail), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ConversationHandler handles GET /api/chat/conversations/:email.
func (h *ChatHandler) ConversationHandler(c *gin.Context) {
	email := c.GetString("userEmail")
	peerEmail := c.Param("email")

	messages, err := h.ChatService.Conversation(email, peerEmail)
	if err != nil {
		getLogger(c).Error("Failed to fetch conversation",
			zap.String("peer", peerEmail), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversation"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// InboxHandler handles GET /api/chat/inbox.
func (h *ChatHandler) InboxHandler(c *gin.Context) {
	email := c.GetString("userEmail")

	summaries, err := h.ChatService.Inbox(email)
	if err != nil {
		getLogger(c).Error("Failed to build inbox", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build inbox"})
		return
	}
	c.JSON(http.StatusOK, summaries)
}
