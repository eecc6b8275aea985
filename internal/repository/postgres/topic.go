package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arvind-ks/roomhub/internal/models"
)

type TopicStore struct {
	pool *pgxpool.Pool
}

func NewTopicStore(pool *pgxpool.Pool) *TopicStore {
	return &TopicStore{pool: pool}
}

// GetOrCreate inserts the topic if it is new, otherwise returns the
// existing row. One statement, so two concurrent requests filing a room
// under the same new topic name cannot race a check-then-create into
// duplicate rows — the unique constraint on name arbitrates.
//
// The DO UPDATE on conflict looks odd (it sets name to itself) but is
// what makes RETURNING yield the existing row; DO NOTHING would return
// no row at all on the conflict path.
func (s *TopicStore) GetOrCreate(ctx context.Context, name string) (*models.Topic, error) {
	query := `
		INSERT INTO topics (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, created_at`

	var t models.Topic
	err := s.pool.QueryRow(ctx, query, name).Scan(
		&t.ID,
		&t.Name,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get or create topic: %w", err)
	}
	return &t, nil
}

func (s *TopicStore) Search(ctx context.Context, q string) ([]models.Topic, error) {
	query := `
		SELECT id, name, created_at
		FROM topics
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name`

	return s.list(ctx, query, q)
}

func (s *TopicStore) List(ctx context.Context, limit int) ([]models.Topic, error) {
	if limit > 0 {
		query := `
			SELECT id, name, created_at
			FROM topics
			ORDER BY name
			LIMIT $1`
		return s.list(ctx, query, limit)
	}

	query := `
		SELECT id, name, created_at
		FROM topics
		ORDER BY name`
	return s.list(ctx, query)
}

func (s *TopicStore) list(ctx context.Context, query string, args ...any) ([]models.Topic, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	topics := make([]models.Topic, 0)
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topics: %w", err)
	}

	return topics, nil
}
