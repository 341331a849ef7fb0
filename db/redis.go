package db

import (
	"context"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

var RDB *redis.Client
var initOnce sync.Once

// InitRedis connects the shared client. Only the redis snapshot
// provider needs it, so it is not done in init().
func InitRedis(addr string) {
	initOnce.Do(func() {
		RDB = redis.NewClient(&redis.Options{
			Addr:     addr,
			PoolSize: 10,
		})
		if ok, err := RDB.Ping(context.Background()).Result(); ok != "PONG" && err != nil {
			logrus.Panicln(ok, err)
		}
	})
}
