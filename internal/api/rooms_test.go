package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arvind-ks/roomhub/internal/models"
)

// stubRoomRepo serves the read-only endpoints from a fixed slice.
type stubRoomRepo struct {
	rooms []models.Room
}

func (s *stubRoomRepo) Create(context.Context, uuid.UUID, uuid.UUID, string, string) (*models.Room, error) {
	panic("not used by the read API")
}

func (s *stubRoomRepo) GetByID(_ context.Context, roomID uuid.UUID) (*models.Room, error) {
	for i := range s.rooms {
		if s.rooms[i].ID == roomID {
			return &s.rooms[i], nil
		}
	}
	return nil, nil
}

func (s *stubRoomRepo) Update(context.Context, *models.Room) error { panic("not used by the read API") }
func (s *stubRoomRepo) Delete(context.Context, uuid.UUID) error    { panic("not used by the read API") }

func (s *stubRoomRepo) Search(context.Context, string) ([]models.Room, error) {
	return s.rooms, nil
}

func (s *stubRoomRepo) ListByHost(context.Context, uuid.UUID) ([]models.Room, error) {
	panic("not used by the read API")
}

func (s *stubRoomRepo) AddParticipant(context.Context, uuid.UUID, uuid.UUID) error {
	panic("not used by the read API")
}

func (s *stubRoomRepo) ListParticipants(context.Context, uuid.UUID) ([]models.User, error) {
	panic("not used by the read API")
}

func newTestRouter(repo *stubRoomRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewRoomHandler(repo, zap.NewNop())
	srv := gin.New()
	srv.GET("/api", h.Routes)
	srv.GET("/api/rooms", h.List)
	srv.GET("/api/rooms/:id", h.Get)
	return srv
}

func get(srv *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRoutes_SelfDescribingIndex(t *testing.T) {
	srv := newTestRouter(&stubRoomRepo{})

	w := get(srv, "/api")
	require.Equal(t, http.StatusOK, w.Code)

	var routes []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &routes))
	assert.Equal(t, []string{"GET /api", "GET /api/rooms", "GET /api/rooms/:id"}, routes)
}

func TestListRooms(t *testing.T) {
	repo := &stubRoomRepo{rooms: []models.Room{
		{ID: uuid.New(), Name: "General", TopicName: "Python", HostUsername: "alice"},
		{ID: uuid.New(), Name: "Studio", TopicName: "Design", HostUsername: "bob"},
	}}
	srv := newTestRouter(repo)

	w := get(srv, "/api/rooms")
	require.Equal(t, http.StatusOK, w.Code)

	var got []models.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, repo.rooms[0].ID, got[0].ID)
	assert.Equal(t, "General", got[0].Name)
	assert.Equal(t, "Python", got[0].TopicName)
	assert.Equal(t, "bob", got[1].HostUsername)
}

func TestGetRoom(t *testing.T) {
	room := models.Room{ID: uuid.New(), Name: "General", TopicName: "Python"}
	srv := newTestRouter(&stubRoomRepo{rooms: []models.Room{room}})

	w := get(srv, "/api/rooms/"+room.ID.String())
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, room.ID, got.ID)
	assert.Equal(t, "General", got.Name)
}

func TestGetRoom_NotFound(t *testing.T) {
	srv := newTestRouter(&stubRoomRepo{})

	w := get(srv, "/api/rooms/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRoom_InvalidID(t *testing.T) {
	srv := newTestRouter(&stubRoomRepo{})

	w := get(srv, "/api/rooms/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
