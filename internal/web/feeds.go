package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arvind-ks/roomhub/internal/middleware"
	"github.com/arvind-ks/roomhub/internal/repository"
)

// FeedHandler serves the two site-wide browse pages: the topic index
// and the activity feed.
type FeedHandler struct {
	topics   repository.TopicRepository
	messages repository.MessageRepository
	logger   *zap.Logger
}

func NewFeedHandler(topics repository.TopicRepository, messages repository.MessageRepository, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{topics: topics, messages: messages, logger: logger}
}

// Topics handles GET /topics?q=... — substring filter on topic name.
func (h *FeedHandler) Topics(c *gin.Context) {
	q := c.Query("q")

	topics, err := h.topics.Search(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("failed to search topics", zap.Error(err))
		serverError(c)
		return
	}

	c.HTML(http.StatusOK, "topics.html", gin.H{
		"user":   middleware.GetUser(c),
		"topics": topics,
		"q":      q,
	})
}

// Activity handles GET /activity — every message on the site, newest
// first, no filter.
func (h *FeedHandler) Activity(c *gin.Context) {
	roomMessages, err := h.messages.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list activity", zap.Error(err))
		serverError(c)
		return
	}

	c.HTML(http.StatusOK, "activity.html", gin.H{
		"user":          middleware.GetUser(c),
		"room_messages": roomMessages,
	})
}
