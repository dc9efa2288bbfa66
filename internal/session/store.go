// Package session implements the server-side session store.
//
// A session is an opaque token carried in a cookie by the client and mapped
// to a user id in Redis. Handlers resolve the token explicitly on each
// request; there is no ambient "current user" state anywhere in the process.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"warbler/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrUnavailable is returned when the session backend cannot be reached.
var ErrUnavailable = errors.New("session store unavailable")

const keyPrefix = "session:"

// Store maps opaque session tokens to user ids with a sliding TTL.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewStore returns a Store backed by the given Redis client. Sessions expire
// after ttl of inactivity; each successful Resolve slides the expiry forward.
func NewStore(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{rdb: rdb, ttl: ttl, logger: logger}
}

// Create opens a session for userID and returns the new token.
func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	if s.rdb == nil {
		return "", ErrUnavailable
	}

	token := uuid.New().String()
	key := keyPrefix + token
	if err := s.rdb.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), s.ttl).Err(); err != nil {
		observability.SessionOperations.WithLabelValues("create", "error").Inc()
		return "", fmt.Errorf("create session: %w", err)
	}

	observability.SessionOperations.WithLabelValues("create", "ok").Inc()
	return token, nil
}

// Resolve returns the user id bound to token, or 0 when the token does not
// map to a live session. Store failures are logged and reported as anonymous
// rather than failing the request.
func (s *Store) Resolve(ctx context.Context, token string) (uint, error) {
	if s.rdb == nil || token == "" {
		return 0, nil
	}

	key := keyPrefix + token
	raw, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		observability.SessionOperations.WithLabelValues("resolve", "miss").Inc()
		return 0, nil
	}
	if err != nil {
		observability.SessionOperations.WithLabelValues("resolve", "error").Inc()
		s.logger.WarnContext(ctx, "session resolution failed", slog.String("error", err.Error()))
		return 0, nil
	}

	userID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		// Corrupt entry; discard it.
		s.rdb.Del(ctx, key)
		observability.SessionOperations.WithLabelValues("resolve", "corrupt").Inc()
		return 0, nil
	}

	// Sliding expiry: activity keeps the session alive.
	s.rdb.Expire(ctx, key, s.ttl)
	observability.SessionOperations.WithLabelValues("resolve", "ok").Inc()
	return uint(userID), nil
}

// Destroy removes the session for token. Destroying an unknown token is a no-op.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if s.rdb == nil || token == "" {
		return nil
	}

	if err := s.rdb.Del(ctx, keyPrefix+token).Err(); err != nil {
		observability.SessionOperations.WithLabelValues("destroy", "error").Inc()
		return fmt.Errorf("destroy session: %w", err)
	}
	observability.SessionOperations.WithLabelValues("destroy", "ok").Inc()
	return nil
}

// DestroyAllForUser removes every live session bound to userID. Used when an
// account is deleted so stale cookies cannot resolve afterwards.
func (s *Store) DestroyAllForUser(ctx context.Context, userID uint) error {
	if s.rdb == nil {
		return nil
	}

	want := strconv.FormatUint(uint64(userID), 10)
	iter := s.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if val, err := s.rdb.Get(ctx, key).Result(); err == nil && val == want {
			s.rdb.Del(ctx, key)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan sessions: %w", err)
	}
	return nil
}
