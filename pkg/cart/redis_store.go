package cart

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps cart blobs as plain string values with an expiry that is
// refreshed on every write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	blob, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get")
	}
	return blob, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, blob []byte) error {
	return errors.Wrap(r.client.Set(ctx, key, blob, r.ttl).Err(), "redis set")
}
