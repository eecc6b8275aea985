package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arvind-ks/roomhub/internal/models"
)

// roomColumns is the select list every room query shares: the room row
// plus the joined topic name and host username the views render.
const roomColumns = `
	r.id, r.host_id, r.topic_id, r.name, r.description,
	r.created_at, r.updated_at, t.name, u.username`

const roomJoins = `
	FROM rooms r
	JOIN topics t ON t.id = r.topic_id
	JOIN users u ON u.id = r.host_id`

type RoomStore struct {
	pool *pgxpool.Pool
}

func NewRoomStore(pool *pgxpool.Pool) *RoomStore {
	return &RoomStore{pool: pool}
}

func (s *RoomStore) Create(ctx context.Context, hostID, topicID uuid.UUID, name, description string) (*models.Room, error) {
	query := `
		INSERT INTO rooms (host_id, topic_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	room := models.Room{
		HostID:      hostID,
		TopicID:     topicID,
		Name:        name,
		Description: description,
	}
	err := s.pool.QueryRow(ctx, query, hostID, topicID, name, description).Scan(
		&room.ID,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert room: %w", err)
	}
	return &room, nil
}

func (s *RoomStore) GetByID(ctx context.Context, roomID uuid.UUID) (*models.Room, error) {
	query := `SELECT` + roomColumns + roomJoins + `
	WHERE r.id = $1`

	var room models.Room
	err := s.pool.QueryRow(ctx, query, roomID).Scan(
		&room.ID,
		&room.HostID,
		&room.TopicID,
		&room.Name,
		&room.Description,
		&room.CreatedAt,
		&room.UpdatedAt,
		&room.TopicName,
		&room.HostUsername,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &room, nil
}

func (s *RoomStore) Update(ctx context.Context, room *models.Room) error {
	query := `
		UPDATE rooms
		SET name = $2, topic_id = $3, description = $4, updated_at = now()
		WHERE id = $1`

	_, err := s.pool.Exec(ctx, query, room.ID, room.Name, room.TopicID, room.Description)
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	return nil
}

// Delete removes the room; messages and participant rows follow via the
// schema's ON DELETE CASCADE.
func (s *RoomStore) Delete(ctx context.Context, roomID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, roomID)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}

// Search matches q as a case-insensitive substring of the topic name,
// the room name or the description — an OR across the three, so a query
// hits a room through any of them. Empty q matches every room.
func (s *RoomStore) Search(ctx context.Context, q string) ([]models.Room, error) {
	query := `SELECT` + roomColumns + roomJoins + `
	WHERE t.name ILIKE '%' || $1 || '%'
	   OR r.name ILIKE '%' || $1 || '%'
	   OR r.description ILIKE '%' || $1 || '%'
	ORDER BY r.created_at DESC`

	return s.list(ctx, query, q)
}

func (s *RoomStore) ListByHost(ctx context.Context, hostID uuid.UUID) ([]models.Room, error) {
	query := `SELECT` + roomColumns + roomJoins + `
	WHERE r.host_id = $1
	ORDER BY r.created_at DESC`

	return s.list(ctx, query, hostID)
}

// AddParticipant records that a user posted in a room. ON CONFLICT DO
// NOTHING keeps it idempotent: posting twice leaves one membership row.
func (s *RoomStore) AddParticipant(ctx context.Context, roomID, userID uuid.UUID) error {
	query := `
		INSERT INTO room_participants (room_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (room_id, user_id) DO NOTHING`

	_, err := s.pool.Exec(ctx, query, roomID, userID)
	if err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	return nil
}

func (s *RoomStore) ListParticipants(ctx context.Context, roomID uuid.UUID) ([]models.User, error) {
	query := `
		SELECT u.id, u.email, u.username, u.name, u.bio, u.avatar, u.password_hash, u.created_at
		FROM room_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.room_id = $1
		ORDER BY u.username`

	rows, err := s.pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.Username,
			&u.Name,
			&u.Bio,
			&u.Avatar,
			&u.PasswordHash,
			&u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}

	return users, nil
}

func (s *RoomStore) list(ctx context.Context, query string, args ...any) ([]models.Room, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]models.Room, 0)
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(
			&room.ID,
			&room.HostID,
			&room.TopicID,
			&room.Name,
			&room.Description,
			&room.CreatedAt,
			&room.UpdatedAt,
			&room.TopicName,
			&room.HostUsername,
		); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}

	return rooms, nil
}
