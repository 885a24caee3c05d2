package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const slotPrefix = "console:slot:"

// SlotStorage persists named session slots in Redis. Values are opaque
// serialized strings; every write refreshes the slot TTL so live sessions
// do not expire under the user.
type SlotStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSlotStorage wraps the given Redis client. ttl <= 0 stores slots
// without expiry.
func NewSlotStorage(client *redis.Client, ttl time.Duration) *SlotStorage {
	return &SlotStorage{client: client, ttl: ttl}
}

func (s *SlotStorage) Read(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, slotPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("slot read: %w", err)
	}
	return val, true, nil
}

func (s *SlotStorage) Write(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, slotPrefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("slot write: %w", err)
	}
	return nil
}
