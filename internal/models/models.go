package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Email is the login key and is stored
// lowercase; username is lowercased on registration as well so profile
// URLs and mentions are case-stable.
//
// PasswordHash is tagged json:"-" so it can never leak through the read
// API or any other JSON serialization path.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Bio          string    `json:"bio"`
	Avatar       string    `json:"avatar"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Topic is a free-text category applied to rooms. Names are unique:
// lookups go through an atomic get-or-create, so two rooms filed under
// "python" always point at the same row.
type Topic struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Room is a discussion room. The host is the user who created it and is
// the only one allowed to update or delete it.
//
// TopicName and HostUsername are denormalized read-side fields populated
// by the room queries (a join, not a stored column) — list and detail
// pages always need them, and the model carrying them keeps handlers
// from doing N+1 lookups.
type Room struct {
	ID          uuid.UUID `json:"id"`
	HostID      uuid.UUID `json:"host_id"`
	TopicID     uuid.UUID `json:"topic_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	TopicName    string `json:"topic"`
	HostUsername string `json:"host"`
}

// Message is a single post in a room. Messages use bigserial IDs: they
// are the highest-volume table and an int64 sequence is naturally
// ordered, so "newest first" is an index walk on the primary key.
//
// Username, RoomName and TopicName are join-populated for the feed
// views, same as on Room.
type Message struct {
	ID        int64     `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	UserID    uuid.UUID `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`

	Username  string `json:"username"`
	RoomName  string `json:"room_name"`
	TopicName string `json:"topic"`
}
