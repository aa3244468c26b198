package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrDataNotFound is returned when no view data is stored under a key
var ErrDataNotFound = errors.New("view data not found")

// RedisDataStore implements DataStore with JSON documents in Redis
type RedisDataStore struct {
	client *redis.Client
	prefix string
}

// NewRedisDataStore creates a new Redis data store
func NewRedisDataStore(client *redis.Client, prefix string) *RedisDataStore {
	return &RedisDataStore{
		client: client,
		prefix: prefix,
	}
}

// Load loads the view data stored under key
func (s *RedisDataStore) Load(ctx context.Context, key string) (map[string]interface{}, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrDataNotFound, key)
		}
		return nil, fmt.Errorf("failed to load view data: %w", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal view data: %w", err)
	}

	return out, nil
}
