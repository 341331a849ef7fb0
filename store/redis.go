package store

import (
	"context"
	"errors"
	"wardenbot/db"

	"github.com/go-redis/redis/v8"
)

const redisSnapshotKey = "warden:state_snapshot"

type RedisClient struct {
	rdb *redis.Client
}

func newRedisClient(addr string) *RedisClient {
	db.InitRedis(addr)
	return &RedisClient{rdb: db.RDB}
}

func (r *RedisClient) loadBlob() ([]byte, error) {
	blob, err := r.rdb.Get(context.Background(), redisSnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return blob, nil
}

func (r *RedisClient) saveBlob(blob []byte) error {
	return r.rdb.Set(context.Background(), redisSnapshotKey, blob, 0).Err()
}
