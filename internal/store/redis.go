package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore satisfies Store on a Redis backend, for deployments where
// client-local state should survive host moves. Same contract as FileStore:
// unreadable state is absent state.
type RedisStore struct {
	rdb     *redis.Client
	prefix  string
	timeout time.Duration
	logger  *zap.Logger
}

func NewRedisStore(addr, prefix string, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{
		rdb:     redis.NewClient(&redis.Options{Addr: addr}),
		prefix:  prefix,
		timeout: 5 * time.Second,
		logger:  logger,
	}
}

func (s *RedisStore) key(key string) string { return s.prefix + ":" + key }

func (s *RedisStore) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	raw, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("Redis read failed, treating state as absent",
				zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return raw, true
}

func (s *RedisStore) Set(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.rdb.Set(ctx, s.key(key), value, 0).Err()
}

func (s *RedisStore) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.rdb.Del(ctx, s.key(key)).Err()
}
