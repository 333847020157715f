package stayauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var errCredentialBackend = errors.New("credential backend unavailable")

// RedisCredentialStore keeps the bearer token in Redis, for hosts where the
// session core runs inside a long-lived agent rather than on a device with
// local storage. The key is namespaced by the configured prefix and an
// installation identifier so multiple installs can share one Redis.
type RedisCredentialStore struct {
	redis *redis.Client
	key   string
	ttl   time.Duration
}

// NewRedisCredentialStore creates a store for the given installation id.
// ttl bounds how long a persisted token survives; zero keeps it until
// cleared.
func NewRedisCredentialStore(client *redis.Client, prefix, installID string, ttl time.Duration) *RedisCredentialStore {
	if prefix == "" {
		prefix = "sct"
	}
	return &RedisCredentialStore{
		redis: client,
		key:   prefix + ":" + installID,
		ttl:   ttl,
	}
}

// Get reads the stored token. A missing key means no session to restore.
func (s *RedisCredentialStore) Get(ctx context.Context) (string, bool, error) {
	token, err := s.redis.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", errCredentialBackend, err)
	}
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// Set writes the token under the install key, applying the configured TTL.
func (s *RedisCredentialStore) Set(ctx context.Context, token string) error {
	if err := s.redis.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", errCredentialBackend, err)
	}
	return nil
}

// Clear deletes the stored token. Deleting an absent key is not an error.
func (s *RedisCredentialStore) Clear(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", errCredentialBackend, err)
	}
	return nil
}
