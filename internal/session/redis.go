package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "gateway:session:"

// RedisStore persists sessions in Redis so multiple gateway instances share
// them.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a Redis-backed store with the given session TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Get loads and decodes the session.
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get session %s: %w", id, err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &sess, nil
}

// Set stores the session, resetting its TTL.
func (s *RedisStore) Set(ctx context.Context, sess *Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+sess.ID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session %s: %w", sess.ID, err)
	}
	return nil
}

// Clear removes the session.
func (s *RedisStore) Clear(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis delete session %s: %w", id, err)
	}
	return nil
}
