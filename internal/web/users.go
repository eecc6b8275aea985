package web

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arvind-ks/roomhub/internal/middleware"
	"github.com/arvind-ks/roomhub/internal/repository"
)

// UserHandler serves public profiles and the profile editor.
type UserHandler struct {
	users    repository.UserRepository
	rooms    repository.RoomRepository
	messages repository.MessageRepository
	topics   repository.TopicRepository

	// uploadDir receives avatar files; they're served back under
	// /uploads.
	uploadDir string
	logger    *zap.Logger
}

func NewUserHandler(
	users repository.UserRepository,
	rooms repository.RoomRepository,
	messages repository.MessageRepository,
	topics repository.TopicRepository,
	uploadDir string,
	logger *zap.Logger,
) *UserHandler {
	return &UserHandler{
		users:     users,
		rooms:     rooms,
		messages:  messages,
		topics:    topics,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

type profileForm struct {
	Username string `form:"username" binding:"required,alphanum,min=3,max=30"`
	Email    string `form:"email" binding:"required,email"`
	Name     string `form:"name" binding:"max=100"`
	Bio      string `form:"bio" binding:"max=500"`
}

// Profile handles GET /profile/:id — public, shows the user's hosted
// rooms, their posts and the full topic list.
func (h *UserHandler) Profile(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get user", zap.Error(err))
		serverError(c)
		return
	}
	if user == nil {
		notFound(c)
		return
	}

	rooms, err := h.rooms.ListByHost(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("failed to list hosted rooms", zap.Error(err))
		serverError(c)
		return
	}

	roomMessages, err := h.messages.ListByAuthor(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("failed to list authored messages", zap.Error(err))
		serverError(c)
		return
	}

	topics, err := h.topics.List(c.Request.Context(), 0)
	if err != nil {
		h.logger.Error("failed to list topics", zap.Error(err))
		serverError(c)
		return
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"user":          middleware.GetUser(c),
		"profile":       user,
		"rooms":         rooms,
		"room_messages": roomMessages,
		"topics":        topics,
	})
}

// UpdateForm handles GET /update-user. The route takes no identifier:
// the editor always targets the session's own account.
func (h *UserHandler) UpdateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "update_user.html", gin.H{
		"user": middleware.GetUser(c),
	})
}

// Update handles POST /update-user, a multipart form with an optional
// avatar file.
func (h *UserHandler) Update(c *gin.Context) {
	user := middleware.GetUser(c)

	var form profileForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "update_user.html", gin.H{
			"user":  user,
			"error": "An error occurred updating your profile",
		})
		return
	}

	if file, err := c.FormFile("avatar"); err == nil {
		// Never trust the uploaded filename — keep only the extension
		// and store under a fresh UUID.
		name := uuid.New().String() + filepath.Ext(file.Filename)
		dst := filepath.Join(h.uploadDir, name)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			h.logger.Error("failed to save avatar", zap.Error(err))
			serverError(c)
			return
		}
		user.Avatar = "/uploads/" + name
	}

	user.Username = strings.ToLower(form.Username)
	user.Email = strings.ToLower(form.Email)
	user.Name = form.Name
	user.Bio = form.Bio

	if err := h.users.Update(c.Request.Context(), user); err != nil {
		h.logger.Error("failed to update user", zap.Error(err))
		serverError(c)
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile/"+user.ID.String())
}
