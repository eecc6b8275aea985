package web

// Test harness: a full gin engine wired exactly like cmd/server, with
// the in-memory fakes behind the repositories and miniredis behind the
// session store. Tests drive it over httptest and assert on rendered
// HTML, redirects and fake state.

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/arvind-ks/roomhub/internal/middleware"
	"github.com/arvind-ks/roomhub/internal/models"
	"github.com/arvind-ks/roomhub/internal/session"
)

type testApp struct {
	ms       *memStore
	users    *memUserRepo
	topics   *memTopicRepo
	rooms    *memRoomRepo
	messages *memMessageRepo
	sessions *session.Store
	srv      *gin.Engine
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ms := newMemStore()
	app := &testApp{
		ms:       ms,
		users:    &memUserRepo{ms: ms},
		topics:   &memTopicRepo{ms: ms},
		rooms:    &memRoomRepo{ms: ms},
		messages: &memMessageRepo{ms: ms},
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	app.sessions = session.NewStore(rdb, "test-secret", time.Hour)

	logger := zap.NewNop()

	srv := gin.New()
	srv.LoadHTMLGlob("../../templates/*.html")
	srv.Use(middleware.CurrentUser(app.sessions, app.users, logger))
	RegisterRoutes(srv,
		NewAuthHandler(app.users, app.sessions, logger),
		NewRoomHandler(app.rooms, app.topics, app.messages, logger),
		NewMessageHandler(app.messages, logger),
		NewUserHandler(app.users, app.rooms, app.messages, app.topics, t.TempDir(), logger),
		NewFeedHandler(app.topics, app.messages, logger),
	)
	app.srv = srv

	return app
}

func (a *testApp) addUser(t *testing.T, username, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := a.users.Create(context.Background(), email, username, "", string(hash))
	require.NoError(t, err)
	return u
}

func (a *testApp) addRoom(t *testing.T, host *models.User, topicName, name, description string) *models.Room {
	t.Helper()
	topic, err := a.topics.GetOrCreate(context.Background(), topicName)
	require.NoError(t, err)
	room, err := a.rooms.Create(context.Background(), host.ID, topic.ID, name, description)
	require.NoError(t, err)
	return room
}

func (a *testApp) addMessage(t *testing.T, room *models.Room, author *models.User, body string) *models.Message {
	t.Helper()
	msg, err := a.messages.Create(context.Background(), room.ID, author.ID, body)
	require.NoError(t, err)
	require.NoError(t, a.rooms.AddParticipant(context.Background(), room.ID, author.ID))
	return msg
}

// login opens a session for the user and returns the cookie a browser
// would hold.
func (a *testApp) login(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	token, err := a.sessions.Create(context.Background(), user.ID)
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: token}
}

func (a *testApp) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.srv.ServeHTTP(w, req)
	return w
}

func (a *testApp) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.srv.ServeHTTP(w, req)
	return w
}
