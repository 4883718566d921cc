package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	domrepo "FinCast/internal/domain/repository"
)

// RedisModelStore keeps the model blob under a single Redis key so several
// replicas can share one fit.
type RedisModelStore struct {
	client *redis.Client
	key    string
}

var _ domrepo.ModelStore = (*RedisModelStore)(nil)

func NewRedisModelStore(client *redis.Client, key string) *RedisModelStore {
	return &RedisModelStore{client: client, key: key}
}

func (s *RedisModelStore) Save(ctx context.Context, blob []byte) error {
	if err := s.client.Set(ctx, s.key, blob, 0).Err(); err != nil {
		return fmt.Errorf("redis save model: %w", err)
	}
	return nil
}

func (s *RedisModelStore) Load(ctx context.Context) ([]byte, bool, error) {
	blob, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis load model: %w", err)
	}
	return blob, true, nil
}
