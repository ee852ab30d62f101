package handler

import (
	"net/http"

	"github.com/doublemate/doublemate-backend/internal/usecase/chat"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatUseCase *chat.ChatUseCase
}

func NewChatHandler(chatUseCase *chat.ChatUseCase) *ChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase}
}

// ListMessages handles GET /chat/messages?match_id=...
func (h *ChatHandler) ListMessages(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	matchID := c.Query("match_id")
	if matchID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "match_id is required"})
		return
	}

	messages, err := h.chatUseCase.ListMessages(c.Request.Context(), matchID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "messages": messages})
}

type sendMessageRequest struct {
	MatchID    string `json:"match_id" binding:"required"`
	ReceiverID string `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required,notblank"`
}

// SendMessage handles POST /chat/messages. The sender is the authenticated
// user.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	senderID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "match_id, receiver_id and content are required"})
		return
	}

	message, err := h.chatUseCase.SendMessage(c.Request.Context(), req.MatchID, senderID, req.ReceiverID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": message})
}
