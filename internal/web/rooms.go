package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arvind-ks/roomhub/internal/middleware"
	"github.com/arvind-ks/roomhub/internal/models"
	"github.com/arvind-ks/roomhub/internal/repository"
)

// RoomHandler serves the home page, room detail and the host-only room
// mutations.
type RoomHandler struct {
	rooms    repository.RoomRepository
	topics   repository.TopicRepository
	messages repository.MessageRepository
	logger   *zap.Logger
}

func NewRoomHandler(
	rooms repository.RoomRepository,
	topics repository.TopicRepository,
	messages repository.MessageRepository,
	logger *zap.Logger,
) *RoomHandler {
	return &RoomHandler{rooms: rooms, topics: topics, messages: messages, logger: logger}
}

// homeTopicLimit caps the topic sidebar on the home page.
const homeTopicLimit = 5

// Home handles GET /?q=...
//
// One q drives two independent filters: rooms matching q in topic name,
// room name or description; and the activity column, which is messages
// whose room's topic matches q — not the messages of the matched rooms.
// Searching "python" surfaces python chatter even from rooms the room
// list didn't match.
func (h *RoomHandler) Home(c *gin.Context) {
	q := c.Query("q")

	rooms, err := h.rooms.Search(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("failed to search rooms", zap.Error(err))
		serverError(c)
		return
	}

	topics, err := h.topics.List(c.Request.Context(), homeTopicLimit)
	if err != nil {
		h.logger.Error("failed to list topics", zap.Error(err))
		serverError(c)
		return
	}

	roomMessages, err := h.messages.SearchByTopic(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("failed to search messages", zap.Error(err))
		serverError(c)
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"user":          middleware.GetUser(c),
		"rooms":         rooms,
		"topics":        topics,
		"room_count":    len(rooms),
		"room_messages": roomMessages,
		"q":             q,
	})
}

// Show handles GET /room/:id.
func (h *RoomHandler) Show(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	room, err := h.rooms.GetByID(c.Request.Context(), roomID)
	if err != nil {
		h.logger.Error("failed to get room", zap.Error(err))
		serverError(c)
		return
	}
	if room == nil {
		notFound(c)
		return
	}

	roomMessages, err := h.messages.ListByRoom(c.Request.Context(), roomID)
	if err != nil {
		h.logger.Error("failed to list room messages", zap.Error(err))
		serverError(c)
		return
	}

	participants, err := h.rooms.ListParticipants(c.Request.Context(), roomID)
	if err != nil {
		h.logger.Error("failed to list participants", zap.Error(err))
		serverError(c)
		return
	}

	c.HTML(http.StatusOK, "room.html", gin.H{
		"user":          middleware.GetUser(c),
		"room":          room,
		"room_messages": roomMessages,
		"participants":  participants,
	})
}

// PostMessage handles POST /room/:id. Behind RequireLogin: posting is a
// mutation like any other and gets the same guard. Posting also makes
// the poster a participant of the room; reposting doesn't duplicate the
// membership.
func (h *RoomHandler) PostMessage(c *gin.Context) {
	user := middleware.GetUser(c)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return
	}

	room, err := h.rooms.GetByID(c.Request.Context(), roomID)
	if err != nil {
		h.logger.Error("failed to get room", zap.Error(err))
		serverError(c)
		return
	}
	if room == nil {
		notFound(c)
		return
	}

	body := strings.TrimSpace(c.PostForm("body"))
	if body != "" {
		if _, err := h.messages.Create(c.Request.Context(), room.ID, user.ID, body); err != nil {
			h.logger.Error("failed to create message", zap.Error(err))
			serverError(c)
			return
		}
		if err := h.rooms.AddParticipant(c.Request.Context(), room.ID, user.ID); err != nil {
			h.logger.Error("failed to add participant", zap.Error(err))
			serverError(c)
			return
		}
	}

	c.Redirect(http.StatusSeeOther, "/room/"+room.ID.String())
}

// CreateForm handles GET /room-create.
func (h *RoomHandler) CreateForm(c *gin.Context) {
	topics, err := h.topics.List(c.Request.Context(), 0)
	if err != nil {
		h.logger.Error("failed to list topics", zap.Error(err))
		serverError(c)
		return
	}

	c.HTML(http.StatusOK, "room_form.html", gin.H{
		"user":   middleware.GetUser(c),
		"topics": topics,
	})
}

// Create handles POST /room-create. The topic field is free text:
// an existing name reuses the topic, a new one creates it, atomically.
func (h *RoomHandler) Create(c *gin.Context) {
	user := middleware.GetUser(c)

	topicName := strings.TrimSpace(c.PostForm("topic"))
	name := strings.TrimSpace(c.PostForm("name"))
	if topicName == "" || name == "" {
		topics, err := h.topics.List(c.Request.Context(), 0)
		if err != nil {
			h.logger.Error("failed to list topics", zap.Error(err))
			serverError(c)
			return
		}
		c.HTML(http.StatusBadRequest, "room_form.html", gin.H{
			"user":   user,
			"topics": topics,
			"error":  "Room name and topic are required",
		})
		return
	}

	topic, err := h.topics.GetOrCreate(c.Request.Context(), topicName)
	if err != nil {
		h.logger.Error("failed to get or create topic", zap.Error(err))
		serverError(c)
		return
	}

	_, err = h.rooms.Create(c.Request.Context(), user.ID, topic.ID, name, c.PostForm("description"))
	if err != nil {
		h.logger.Error("failed to create room", zap.Error(err))
		serverError(c)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// UpdateForm handles GET /update-room/:id. Host only.
func (h *RoomHandler) UpdateForm(c *gin.Context) {
	room, ok := h.loadOwnedRoom(c)
	if !ok {
		return
	}

	topics, err := h.topics.List(c.Request.Context(), 0)
	if err != nil {
		h.logger.Error("failed to list topics", zap.Error(err))
		serverError(c)
		return
	}

	c.HTML(http.StatusOK, "room_form.html", gin.H{
		"user":   middleware.GetUser(c),
		"room":   room,
		"topics": topics,
	})
}

// Update handles POST /update-room/:id. Host only.
func (h *RoomHandler) Update(c *gin.Context) {
	room, ok := h.loadOwnedRoom(c)
	if !ok {
		return
	}

	topic, err := h.topics.GetOrCreate(c.Request.Context(), strings.TrimSpace(c.PostForm("topic")))
	if err != nil {
		h.logger.Error("failed to get or create topic", zap.Error(err))
		serverError(c)
		return
	}

	room.Name = strings.TrimSpace(c.PostForm("name"))
	room.TopicID = topic.ID
	room.Description = c.PostForm("description")

	if err := h.rooms.Update(c.Request.Context(), room); err != nil {
		h.logger.Error("failed to update room", zap.Error(err))
		serverError(c)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// DeleteForm handles GET /delete-room/:id — the confirmation page.
func (h *RoomHandler) DeleteForm(c *gin.Context) {
	room, ok := h.loadOwnedRoom(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "delete.html", gin.H{
		"user": middleware.GetUser(c),
		"obj":  room.Name,
	})
}

// Delete handles POST /delete-room/:id. Host only. The room's messages
// go with it.
func (h *RoomHandler) Delete(c *gin.Context) {
	room, ok := h.loadOwnedRoom(c)
	if !ok {
		return
	}

	if err := h.rooms.Delete(c.Request.Context(), room.ID); err != nil {
		h.logger.Error("failed to delete room", zap.Error(err))
		serverError(c)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// loadOwnedRoom resolves :id and applies the host-only guard. On any
// failure it has already written the response and returns ok=false.
// Guard order matters: 404 for a missing room, then 403 for someone
// else's — an existing room is never reported missing to a non-host.
func (h *RoomHandler) loadOwnedRoom(c *gin.Context) (*models.Room, bool) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return nil, false
	}

	r, err := h.rooms.GetByID(c.Request.Context(), roomID)
	if err != nil {
		h.logger.Error("failed to get room", zap.Error(err))
		serverError(c)
		return nil, false
	}
	if r == nil {
		notFound(c)
		return nil, false
	}

	if !isOwner(middleware.GetUser(c), r.HostID) {
		forbid(c)
		return nil, false
	}

	return r, true
}
