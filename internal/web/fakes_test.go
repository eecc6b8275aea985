package web

// In-memory repository fakes backing the handler tests. They mirror the
// SQL semantics the postgres stores promise: nil, nil on a lookup miss,
// idempotent participant insert, room deletion cascading to messages,
// case-insensitive substring search.

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/arvind-ks/roomhub/internal/models"
)

type memStore struct {
	users        map[uuid.UUID]*models.User
	topics       map[uuid.UUID]*models.Topic
	rooms        map[uuid.UUID]*models.Room
	participants map[uuid.UUID]map[uuid.UUID]bool
	messages     map[int64]*models.Message
	nextMsgID    int64
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[uuid.UUID]*models.User),
		topics:       make(map[uuid.UUID]*models.Topic),
		rooms:        make(map[uuid.UUID]*models.Room),
		participants: make(map[uuid.UUID]map[uuid.UUID]bool),
		messages:     make(map[int64]*models.Message),
	}
}

func icontains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// --- users ---

type memUserRepo struct{ ms *memStore }

func (r *memUserRepo) Create(_ context.Context, email, username, name, passwordHash string) (*models.User, error) {
	u := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		Name:         name,
		PasswordHash: passwordHash,
	}
	r.ms.users[u.ID] = u
	return u, nil
}

func (r *memUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*models.User, error) {
	u, ok := r.ms.users[userID]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.ms.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, user *models.User) error {
	copied := *user
	r.ms.users[user.ID] = &copied
	return nil
}

// --- topics ---

type memTopicRepo struct{ ms *memStore }

func (r *memTopicRepo) GetOrCreate(_ context.Context, name string) (*models.Topic, error) {
	for _, t := range r.ms.topics {
		if t.Name == name {
			return t, nil
		}
	}
	t := &models.Topic{ID: uuid.New(), Name: name}
	r.ms.topics[t.ID] = t
	return t, nil
}

func (r *memTopicRepo) Search(_ context.Context, q string) ([]models.Topic, error) {
	out := make([]models.Topic, 0)
	for _, t := range r.ms.topics {
		if icontains(t.Name, q) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memTopicRepo) List(_ context.Context, limit int) ([]models.Topic, error) {
	out, _ := r.Search(context.Background(), "")
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- rooms ---

type memRoomRepo struct{ ms *memStore }

func (r *memRoomRepo) Create(_ context.Context, hostID, topicID uuid.UUID, name, description string) (*models.Room, error) {
	room := &models.Room{
		ID:          uuid.New(),
		HostID:      hostID,
		TopicID:     topicID,
		Name:        name,
		Description: description,
	}
	if t, ok := r.ms.topics[topicID]; ok {
		room.TopicName = t.Name
	}
	if u, ok := r.ms.users[hostID]; ok {
		room.HostUsername = u.Username
	}
	r.ms.rooms[room.ID] = room
	return room, nil
}

func (r *memRoomRepo) GetByID(_ context.Context, roomID uuid.UUID) (*models.Room, error) {
	room, ok := r.ms.rooms[roomID]
	if !ok {
		return nil, nil
	}
	copied := *room
	return &copied, nil
}

func (r *memRoomRepo) Update(_ context.Context, room *models.Room) error {
	copied := *room
	if t, ok := r.ms.topics[room.TopicID]; ok {
		copied.TopicName = t.Name
	}
	r.ms.rooms[room.ID] = &copied
	return nil
}

func (r *memRoomRepo) Delete(_ context.Context, roomID uuid.UUID) error {
	delete(r.ms.rooms, roomID)
	delete(r.ms.participants, roomID)
	for id, m := range r.ms.messages {
		if m.RoomID == roomID {
			delete(r.ms.messages, id)
		}
	}
	return nil
}

func (r *memRoomRepo) Search(_ context.Context, q string) ([]models.Room, error) {
	out := make([]models.Room, 0)
	for _, room := range r.ms.rooms {
		if icontains(room.TopicName, q) || icontains(room.Name, q) || icontains(room.Description, q) {
			out = append(out, *room)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memRoomRepo) ListByHost(_ context.Context, hostID uuid.UUID) ([]models.Room, error) {
	out := make([]models.Room, 0)
	for _, room := range r.ms.rooms {
		if room.HostID == hostID {
			out = append(out, *room)
		}
	}
	return out, nil
}

func (r *memRoomRepo) AddParticipant(_ context.Context, roomID, userID uuid.UUID) error {
	set, ok := r.ms.participants[roomID]
	if !ok {
		set = make(map[uuid.UUID]bool)
		r.ms.participants[roomID] = set
	}
	set[userID] = true
	return nil
}

func (r *memRoomRepo) ListParticipants(_ context.Context, roomID uuid.UUID) ([]models.User, error) {
	out := make([]models.User, 0)
	for userID := range r.ms.participants[roomID] {
		if u, ok := r.ms.users[userID]; ok {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// --- messages ---

type memMessageRepo struct{ ms *memStore }

func (r *memMessageRepo) Create(_ context.Context, roomID, userID uuid.UUID, body string) (*models.Message, error) {
	r.ms.nextMsgID++
	msg := &models.Message{
		ID:     r.ms.nextMsgID,
		RoomID: roomID,
		UserID: userID,
		Body:   body,
	}
	if u, ok := r.ms.users[userID]; ok {
		msg.Username = u.Username
	}
	if room, ok := r.ms.rooms[roomID]; ok {
		msg.RoomName = room.Name
		msg.TopicName = room.TopicName
	}
	r.ms.messages[msg.ID] = msg
	return msg, nil
}

func (r *memMessageRepo) GetByID(_ context.Context, messageID int64) (*models.Message, error) {
	msg, ok := r.ms.messages[messageID]
	if !ok {
		return nil, nil
	}
	copied := *msg
	return &copied, nil
}

func (r *memMessageRepo) Delete(_ context.Context, messageID int64) error {
	delete(r.ms.messages, messageID)
	return nil
}

func (r *memMessageRepo) ListByRoom(_ context.Context, roomID uuid.UUID) ([]models.Message, error) {
	return r.filter(func(m *models.Message) bool { return m.RoomID == roomID }), nil
}

func (r *memMessageRepo) ListByAuthor(_ context.Context, userID uuid.UUID) ([]models.Message, error) {
	return r.filter(func(m *models.Message) bool { return m.UserID == userID }), nil
}

func (r *memMessageRepo) ListAll(_ context.Context) ([]models.Message, error) {
	return r.filter(func(*models.Message) bool { return true }), nil
}

func (r *memMessageRepo) SearchByTopic(_ context.Context, q string) ([]models.Message, error) {
	return r.filter(func(m *models.Message) bool { return icontains(m.TopicName, q) }), nil
}

// filter returns matches newest first, like the bigserial DESC queries.
func (r *memMessageRepo) filter(keep func(*models.Message) bool) []models.Message {
	out := make([]models.Message, 0)
	for _, m := range r.ms.messages {
		if keep(m) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}
