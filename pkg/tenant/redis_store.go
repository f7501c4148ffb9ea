package tenant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "tenant:"

// redisStore decorates a Store with a Redis cache so tenant lookups are
// shared across API instances. Cache failures degrade to the underlying
// store; Redis being down must not take tenant resolution with it.
type redisStore struct {
	client redis.UniversalClient
	next   Store
	ttl    time.Duration
}

// NewRedisStore wraps a store with a shared Redis cache.
func NewRedisStore(client redis.UniversalClient, next Store, ttl time.Duration) Store {
	return &redisStore{client: client, next: next, ttl: ttl}
}

func (s *redisStore) GetByID(ctx context.Context, id string) (*Tenant, error) {
	key := redisKeyPrefix + id

	if data, err := s.client.Get(ctx, key).Bytes(); err == nil {
		var t Tenant
		if err := json.Unmarshal(data, &t); err == nil {
			return &t, nil
		}
		// Corrupt entry: drop it and fall through to the source.
		_ = s.client.Del(ctx, key).Err()
	}

	t, err := s.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(t); err == nil {
		_ = s.client.Set(ctx, key, data, s.ttl).Err()
	}

	return t, nil
}

// InvalidateRedis drops a tenant from the shared cache, e.g. after an
// admin deactivates it.
func InvalidateRedis(ctx context.Context, client redis.UniversalClient, id string) error {
	return client.Del(ctx, redisKeyPrefix+id).Err()
}
