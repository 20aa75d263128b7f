package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/domain"
)

const redisKeyPrefix = "honeypot:session:"

// RedisStore implements Repository on Redis. Sessions expire natively
// via key TTL, so EvictIdle has nothing to do.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session repository. ttl <= 0
// disables key expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// GetOrCreate loads the session or creates and persists a fresh one.
func (s *RedisStore) GetOrCreate(ctx context.Context, sessionID string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		sess := domain.NewSession(sessionID)
		if saveErr := s.Save(ctx, sess); saveErr != nil {
			return nil, saveErr
		}
		return sess, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	return &sess, nil
}

// Save stores the full session state as JSON, refreshing the TTL.
func (s *RedisStore) Save(ctx context.Context, session *domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+session.SessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// EvictIdle is a no-op: Redis expires keys on its own.
func (s *RedisStore) EvictIdle(_ context.Context, _ time.Duration) (int, error) {
	return 0, nil
}

// Ping verifies Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Repository = (*RedisStore)(nil)
