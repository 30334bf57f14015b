// Package cache provides a small read-through cache with an in-process
// default backend and an optional redis backend for multi-instance
// deployments. Values are msgpack-encoded so both backends store the same
// bytes.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/TwiN/gocache/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const redisTimeout = 2 * time.Second

var local = gocache.NewCache()
var rdb *redis.Client

// UseRedisCache switches the cache to redis. The connection is verified
// before the switch; on error the in-process cache stays active.
func UseRedisCache(opts *redis.Options) error {
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "could not connect to redis")
	}
	rdb = client
	return nil
}

// Key joins the passed parts into a cache key.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Set stores a value under key for the passed lifetime.
func Set(key string, value any, ttl time.Duration) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "cache: could not encode value")
	}
	if rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
		defer cancel()
		return errors.Wrap(rdb.Set(ctx, key, data, ttl).Err(), "cache: redis set failed")
	}
	local.SetWithTTL(key, data, ttl)
	return nil
}

// Get loads the value stored under key into target, returning whether the
// key was present.
func Get(key string, target any) (bool, error) {
	var data []byte
	if rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
		defer cancel()
		res, err := rdb.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		if err != nil {
			return false, errors.Wrap(err, "cache: redis get failed")
		}
		data = res
	} else {
		v, ok := local.Get(key)
		if !ok {
			return false, nil
		}
		data, ok = v.([]byte)
		if !ok {
			return false, errors.New("cache: unexpected value type")
		}
	}
	if err := msgpack.Unmarshal(data, target); err != nil {
		return false, errors.Wrap(err, "cache: could not decode value")
	}
	return true, nil
}
