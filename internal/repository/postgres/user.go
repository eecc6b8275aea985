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

type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) Create(ctx context.Context, email, username, name, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (email, username, name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, username, name, bio, avatar, password_hash, created_at`

	var u models.User
	err := s.pool.QueryRow(ctx, query, email, username, name, passwordHash).Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.Name,
		&u.Bio,
		&u.Avatar,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &u, nil
}

func (s *UserStore) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, email, username, name, bio, avatar, password_hash, created_at
		FROM users
		WHERE id = $1`

	return s.getOne(ctx, query, userID)
}

// GetByEmail looks a user up by login email. Callers lowercase the email
// first — rows are stored normalized, so this is an exact match.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, username, name, bio, avatar, password_hash, created_at
		FROM users
		WHERE email = $1`

	return s.getOne(ctx, query, email)
}

func (s *UserStore) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = $2, username = $3, name = $4, bio = $5, avatar = $6
		WHERE id = $1`

	_, err := s.pool.Exec(ctx, query,
		user.ID, user.Email, user.Username, user.Name, user.Bio, user.Avatar)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *UserStore) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.Name,
		&u.Bio,
		&u.Avatar,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
