package scratch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore черновики в Redis с ограниченным сроком жизни
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, prefix: "psy:scratch", ttl: ttl}
}

func (s *RedisStore) key(owner int64, key string) string {
	return fmt.Sprintf("%s:%d:%s", s.prefix, owner, key)
}

func (s *RedisStore) Set(ctx context.Context, owner int64, key, value string) error {
	if err := s.client.Set(ctx, s.key(owner, key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("scratch set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, owner int64, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(owner, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("scratch get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, owner int64, key string) error {
	if err := s.client.Del(ctx, s.key(owner, key)).Err(); err != nil {
		return fmt.Errorf("scratch delete %s: %w", key, err)
	}
	return nil
}

// Connect создаёт клиента и проверяет соединение
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
