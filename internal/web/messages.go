package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arvind-ks/roomhub/internal/middleware"
	"github.com/arvind-ks/roomhub/internal/models"
	"github.com/arvind-ks/roomhub/internal/repository"
)

// MessageHandler serves message deletion. Author only — same guard
// ordering as rooms: 404 before 403.
type MessageHandler struct {
	messages repository.MessageRepository
	logger   *zap.Logger
}

func NewMessageHandler(messages repository.MessageRepository, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, logger: logger}
}

// DeleteForm handles GET /delete-message/:id — the confirmation page.
func (h *MessageHandler) DeleteForm(c *gin.Context) {
	msg, ok := h.loadOwnedMessage(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "delete.html", gin.H{
		"user": middleware.GetUser(c),
		"obj":  msg.Body,
	})
}

// Delete handles POST /delete-message/:id. Deleting a message never
// touches its room or the author's participant row — a participant is
// someone who has posted, not someone whose posts all survive.
func (h *MessageHandler) Delete(c *gin.Context) {
	msg, ok := h.loadOwnedMessage(c)
	if !ok {
		return
	}

	if err := h.messages.Delete(c.Request.Context(), msg.ID); err != nil {
		h.logger.Error("failed to delete message", zap.Error(err))
		serverError(c)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *MessageHandler) loadOwnedMessage(c *gin.Context) (*models.Message, bool) {
	messageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c)
		return nil, false
	}

	msg, err := h.messages.GetByID(c.Request.Context(), messageID)
	if err != nil {
		h.logger.Error("failed to get message", zap.Error(err))
		serverError(c)
		return nil, false
	}
	if msg == nil {
		notFound(c)
		return nil, false
	}

	if !isOwner(middleware.GetUser(c), msg.UserID) {
		forbid(c)
		return nil, false
	}

	return msg, true
}
