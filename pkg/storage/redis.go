package storage

import (
	"context"
	"fmt"

	"github.com/go-redis/redis"
)

// NewRedis connects to the given redis instance and wraps it as a Store.
func NewRedis(host string, port int) (*redisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: "",
		DB:       0,
	})

	if _, err := client.Ping().Result(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %v", err)
	}

	return &redisStore{client: client}, nil
}

// redisStore adapts a redis client to the Store contract. The client API
// predates context support, so ctx is accepted for symmetry but not
// propagated.
type redisStore struct {
	client *redis.Client
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %q: %v", key, err)
	}
	return value, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value string) error {
	if err := s.client.Set(key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %q: %v", key, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(key).Err(); err != nil {
		return fmt.Errorf("failed to delete %q: %v", key, err)
	}
	return nil
}
