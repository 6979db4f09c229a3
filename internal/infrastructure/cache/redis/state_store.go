// internal/infrastructure/cache/redis/state_store.go
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const stateActiveKey = "state:active"

// StateStore зеркало флага автосканирования в Redis.
// Значение хранится без TTL: "1" или "0".
type StateStore struct {
	client redis.UniversalClient
	prefix string
}

// NewStateStore создает хранилище с префиксом ключей
func NewStateStore(client redis.UniversalClient, prefix string) *StateStore {
	return &StateStore{client: client, prefix: prefix}
}

// Key полный ключ флага
func (s *StateStore) Key() string {
	return s.prefix + stateActiveKey
}

// SaveActive записывает флаг
func (s *StateStore) SaveActive(ctx context.Context, active bool) error {
	value := "0"
	if active {
		value = "1"
	}
	if err := s.client.Set(ctx, s.Key(), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.Key(), err)
	}
	return nil
}

// LoadActive читает флаг; found=false если ключа нет
func (s *StateStore) LoadActive(ctx context.Context) (bool, bool, error) {
	raw, err := s.client.Get(ctx, s.Key()).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("redis get %s: %w", s.Key(), err)
	}

	active, err := strconv.ParseBool(raw)
	if err != nil {
		return false, true, fmt.Errorf("redis %s: bad value %q", s.Key(), raw)
	}
	return active, true, nil
}
