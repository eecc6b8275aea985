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

const messageColumns = `
	m.id, m.room_id, m.user_id, m.body, m.created_at,
	u.username, r.name, t.name`

const messageJoins = `
	FROM messages m
	JOIN users u ON u.id = m.user_id
	JOIN rooms r ON r.id = m.room_id
	JOIN topics t ON t.id = r.topic_id`

type MessageStore struct {
	pool *pgxpool.Pool
}

func NewMessageStore(pool *pgxpool.Pool) *MessageStore {
	return &MessageStore{pool: pool}
}

func (s *MessageStore) Create(ctx context.Context, roomID, userID uuid.UUID, body string) (*models.Message, error) {
	// bigserial ID: Postgres assigns it, RETURNING hands it back.
	query := `
		INSERT INTO messages (room_id, user_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	msg := models.Message{
		RoomID: roomID,
		UserID: userID,
		Body:   body,
	}
	err := s.pool.QueryRow(ctx, query, roomID, userID, body).Scan(
		&msg.ID,
		&msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return &msg, nil
}

func (s *MessageStore) GetByID(ctx context.Context, messageID int64) (*models.Message, error) {
	query := `SELECT` + messageColumns + messageJoins + `
	WHERE m.id = $1`

	var msg models.Message
	err := s.pool.QueryRow(ctx, query, messageID).Scan(
		&msg.ID,
		&msg.RoomID,
		&msg.UserID,
		&msg.Body,
		&msg.CreatedAt,
		&msg.Username,
		&msg.RoomName,
		&msg.TopicName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	return &msg, nil
}

func (s *MessageStore) Delete(ctx context.Context, messageID int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, messageID)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// ListByRoom returns a room's messages newest first. Ordering by id
// rather than created_at: the bigserial sequence is the same order and
// sorts on the primary key.
func (s *MessageStore) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]models.Message, error) {
	query := `SELECT` + messageColumns + messageJoins + `
	WHERE m.room_id = $1
	ORDER BY m.id DESC`

	return s.list(ctx, query, roomID)
}

func (s *MessageStore) ListByAuthor(ctx context.Context, userID uuid.UUID) ([]models.Message, error) {
	query := `SELECT` + messageColumns + messageJoins + `
	WHERE m.user_id = $1
	ORDER BY m.id DESC`

	return s.list(ctx, query, userID)
}

func (s *MessageStore) ListAll(ctx context.Context) ([]models.Message, error) {
	query := `SELECT` + messageColumns + messageJoins + `
	ORDER BY m.id DESC`

	return s.list(ctx, query)
}

// SearchByTopic filters the activity feed by topic-name substring. This
// deliberately ignores room name and description: the home page's feed
// column follows the topic the visitor searched for, not the rooms the
// room search happened to match.
func (s *MessageStore) SearchByTopic(ctx context.Context, q string) ([]models.Message, error) {
	query := `SELECT` + messageColumns + messageJoins + `
	WHERE t.name ILIKE '%' || $1 || '%'
	ORDER BY m.id DESC`

	return s.list(ctx, query, q)
}

func (s *MessageStore) list(ctx context.Context, query string, args ...any) ([]models.Message, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.RoomID,
			&msg.UserID,
			&msg.Body,
			&msg.CreatedAt,
			&msg.Username,
			&msg.RoomName,
			&msg.TopicName,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}
