// Package api is the read-only JSON surface. Three GET endpoints that
// mirror the room listing for programmatic consumers; everything else
// on the site is server-rendered HTML.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arvind-ks/roomhub/internal/repository"
)

type RoomHandler struct {
	rooms  repository.RoomRepository
	logger *zap.Logger
}

func NewRoomHandler(rooms repository.RoomRepository, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{rooms: rooms, logger: logger}
}

// Routes handles GET /api — a self-describing index of the API.
func (h *RoomHandler) Routes(c *gin.Context) {
	c.JSON(http.StatusOK, []string{
		"GET /api",
		"GET /api/rooms",
		"GET /api/rooms/:id",
	})
}

// List handles GET /api/rooms: every room, as a flat JSON array.
// Search("") matches everything, so the listing and the home page share
// one query path.
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.rooms.Search(c.Request.Context(), "")
	if err != nil {
		h.logger.Error("failed to list rooms", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// Get handles GET /api/rooms/:id. A missing room is a clean 404 — a
// lookup miss is a client-visible outcome here, not a server fault.
func (h *RoomHandler) Get(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room ID"})
		return
	}

	room, err := h.rooms.GetByID(c.Request.Context(), roomID)
	if err != nil {
		h.logger.Error("failed to get room", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get room"})
		return
	}
	if room == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	c.JSON(http.StatusOK, room)
}
