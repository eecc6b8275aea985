package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/arvind-ks/roomhub/internal/models"
)

// Every method takes a context.Context: repositories do I/O, and the
// request's context flowing down means a disconnected client cancels
// the query instead of wasting a pool connection.
//
// Lookups by identifier return (nil, nil) when no row matches — "not
// found" is an expected outcome the handler turns into a 404, not an
// error to wrap and log.

// UserRepository handles account data.
type UserRepository interface {
	// Create inserts a new user and returns it with ID and CreatedAt
	// populated. Email and username are stored as given — callers
	// normalize to lowercase first.
	Create(ctx context.Context, email, username, name, passwordHash string) (*models.User, error)

	// GetByID returns a user, or nil, nil if absent.
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)

	// GetByEmail looks a user up by their login email. Used by login.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update persists name, username, email, bio and avatar.
	Update(ctx context.Context, user *models.User) error
}

// TopicRepository handles the room categories.
type TopicRepository interface {
	// GetOrCreate returns the topic with the given name, inserting it
	// first if absent. Atomic: concurrent calls with the same new name
	// yield exactly one row.
	GetOrCreate(ctx context.Context, name string) (*models.Topic, error)

	// Search returns topics whose name contains q, case-insensitively.
	// An empty q matches everything.
	Search(ctx context.Context, q string) ([]models.Topic, error)

	// List returns topics in name order, capped at limit when limit > 0.
	List(ctx context.Context, limit int) ([]models.Topic, error)
}

// RoomRepository handles rooms and their participant sets.
type RoomRepository interface {
	Create(ctx context.Context, hostID, topicID uuid.UUID, name, description string) (*models.Room, error)

	// GetByID returns a room, or nil, nil if absent.
	GetByID(ctx context.Context, roomID uuid.UUID) (*models.Room, error)

	// Update persists name, topic and description.
	Update(ctx context.Context, room *models.Room) error

	// Delete removes the room. Its messages and participant rows go
	// with it (ON DELETE CASCADE).
	Delete(ctx context.Context, roomID uuid.UUID) error

	// Search returns rooms where q is a case-insensitive substring of
	// the topic name, the room name OR the description. Empty q
	// matches everything. Newest first.
	Search(ctx context.Context, q string) ([]models.Room, error)

	// ListByHost returns the rooms a user hosts, newest first.
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]models.Room, error)

	// AddParticipant records that a user has posted in a room.
	// Idempotent: adding an existing participant is a no-op.
	AddParticipant(ctx context.Context, roomID, userID uuid.UUID) error

	// ListParticipants returns the users who have posted in a room.
	ListParticipants(ctx context.Context, roomID uuid.UUID) ([]models.User, error)
}

// MessageRepository handles posts.
type MessageRepository interface {
	Create(ctx context.Context, roomID, userID uuid.UUID, body string) (*models.Message, error)

	// GetByID returns a message, or nil, nil if absent.
	GetByID(ctx context.Context, messageID int64) (*models.Message, error)

	Delete(ctx context.Context, messageID int64) error

	// ListByRoom returns a room's messages, newest first.
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]models.Message, error)

	// ListByAuthor returns everything a user has posted, newest first.
	ListByAuthor(ctx context.Context, userID uuid.UUID) ([]models.Message, error)

	// ListAll returns the site-wide activity feed, newest first.
	ListAll(ctx context.Context) ([]models.Message, error)

	// SearchByTopic returns messages whose room's topic name contains
	// q, case-insensitively. This is the home page's activity column:
	// filtered by topic match alone, independent of which rooms the
	// room search returned.
	SearchByTopic(ctx context.Context, q string) ([]models.Message, error)
}
