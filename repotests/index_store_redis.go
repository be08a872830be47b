package repotests

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisIndexKeyPrefix = "repo-index:"

// RedisIndexStore verifies index entries in Redis. The service is expected to store each
// entry as a hash at "repo-index:<pid>" with fields matching IndexEntry.
type RedisIndexStore struct {
	redis *redis.Client
}

func NewRedisIndexStore(address string) *RedisIndexStore {
	if address == "" {
		address = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: "", // no password set
		DB:       0,  // use default DB
	})
	return &RedisIndexStore{redis: rdb}
}

func (r *RedisIndexStore) Name() string {
	return fmt.Sprintf("redis (%s)", r.redis.Options().Addr)
}

func (r *RedisIndexStore) GetEntry(ctx context.Context, pid string) (IndexEntry, bool, error) {
	fields, err := r.redis.HGetAll(ctx, redisIndexKeyPrefix+pid).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return IndexEntry{}, false, nil
		}
		return IndexEntry{}, false, err
	}
	if len(fields) == 0 {
		// HGetAll returns an empty map rather than a nil error for a missing key
		return IndexEntry{}, false, nil
	}
	return IndexEntry{
		PID:     fields["pid"],
		OwnerID: fields["ownerId"],
		Label:   fields["label"],
	}, true, nil
}

func (r *RedisIndexStore) Reset(ctx context.Context) error {
	iter := r.redis.Scan(ctx, 0, redisIndexKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.redis.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
