// Package session implements the server-side half of login sessions.
//
// The browser holds a signed token (see internal/auth) naming a session
// ID; this store maps that ID to a user ID in Redis with a TTL. Redis is
// the source of truth: a deleted key means logged out, whatever cookies
// are still out there.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/arvind-ks/roomhub/internal/auth"
)

// CookieName is the browser cookie the signed session token lives in.
const CookieName = "roomhub_session"

const keyPrefix = "session:"

type Store struct {
	rdb    *redis.Client
	secret string
	ttl    time.Duration
}

func NewStore(rdb *redis.Client, secret string, ttl time.Duration) *Store {
	return &Store{rdb: rdb, secret: secret, ttl: ttl}
}

// TTL is the session lifetime — also the cookie max-age, so the cookie
// and the Redis key expire together.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create opens a session for a user and returns the cookie value.
func (s *Store) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	sessionID := uuid.New()

	err := s.rdb.Set(ctx, keyPrefix+sessionID.String(), userID.String(), s.ttl).Err()
	if err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	token, err := auth.SignSession(sessionID, s.secret, s.ttl)
	if err != nil {
		// Don't leave an orphaned session behind a cookie that was
		// never issued.
		s.rdb.Del(ctx, keyPrefix+sessionID.String())
		return "", err
	}

	return token, nil
}

// Resolve maps a cookie value back to the user it belongs to. Returns
// uuid.Nil, nil for anything that simply isn't a live session — a bad
// signature, an expired token, a revoked key. Those are all the same
// outcome (anonymous visitor), not errors worth logging. A Redis failure
// is an error.
func (s *Store) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := auth.ParseSession(token, s.secret)
	if err != nil {
		return uuid.Nil, nil
	}

	val, err := s.rdb.Get(ctx, keyPrefix+claims.SessionID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("load session: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt session value: %w", err)
	}
	return userID, nil
}

// Destroy revokes the session behind a cookie value. Unconditional:
// an invalid or already-dead token is a no-op, matching logout being
// safe to hit in any state.
func (s *Store) Destroy(ctx context.Context, token string) error {
	claims, err := auth.ParseSession(token, s.secret)
	if err != nil {
		return nil
	}

	if err := s.rdb.Del(ctx, keyPrefix+claims.SessionID.String()).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
