package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is nil when REDIS_ADDR is unset; every helper degrades to a miss
// so the API works without Redis.
var Client *redis.Client

func Connect(ctx context.Context, addr, password string, db int) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return err
	}

	Client = rdb
	return nil
}

func Enabled() bool {
	return Client != nil
}

// Get retrieves a value and unmarshals it into dest, reporting whether the
// key was present.
func Get(ctx context.Context, key string, dest any) (bool, error) {
	if Client == nil {
		return false, nil
	}

	val, err := Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return true, json.Unmarshal([]byte(val), dest)
}

func Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if Client == nil {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return Client.Set(ctx, key, b, ttl).Err()
}

func Delete(ctx context.Context, keys ...string) error {
	if Client == nil || len(keys) == 0 {
		return nil
	}

	return Client.Del(ctx, keys...).Err()
}
