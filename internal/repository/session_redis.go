package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"alugaki/internal/config"
	"alugaki/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore persists the session user as one JSON value under a
// fixed key, overwritten wholesale on save and deleted wholesale on clear.
type RedisSessionStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisClient builds a client from config.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisSessionStore(client *redis.Client, key string, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (s *RedisSessionStore) Load(ctx context.Context) (*models.User, error) {
	if s.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	val, err := s.client.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session user: %w", err)
	}
	return &user, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, user *models.User) error {
	if s.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal session user: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session to redis: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Clear(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear session in redis: %w", err)
	}
	return nil
}
