package viewcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

const (
	redisKeyPrefix = "comparison:view:"
	redisIndexKey  = "comparison:view:index"
)

// Redis is a Cache shared across processes. Entries are JSON with a TTL; a
// Redis list tracks insertion order to enforce the max entry count.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
	max int
}

// NewRedis wraps an existing client. Non-positive arguments use the defaults.
func NewRedis(rdb *redis.Client, ttl time.Duration, maxEntries int) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Redis{rdb: rdb, ttl: ttl, max: maxEntries}
}

// DialRedis parses a redis:// URL, falling back to treating it as a bare
// address, and verifies the connection.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, eris.Wrap(err, "viewcache: ping redis")
	}
	return rdb, nil
}

// Get returns the entry for key, or nil when absent or expired.
func (r *Redis) Get(ctx context.Context, key string) (*Entry, error) {
	raw, err := r.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "viewcache: get %s", key)
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, eris.Wrapf(err, "viewcache: decode %s", key)
	}
	return &e, nil
}

// Set stores e under key and trims the oldest entries past the bound.
func (r *Redis) Set(ctx context.Context, key string, e *Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return eris.Wrapf(err, "viewcache: encode %s", key)
	}

	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, redisKeyPrefix+key, raw, r.ttl)
		p.LRem(ctx, redisIndexKey, 0, key)
		p.LPush(ctx, redisIndexKey, key)
		return nil
	})
	if err != nil {
		return eris.Wrapf(err, "viewcache: set %s", key)
	}

	overflow, err := r.rdb.LRange(ctx, redisIndexKey, int64(r.max), -1).Result()
	if err != nil {
		return eris.Wrap(err, "viewcache: read index")
	}
	if len(overflow) == 0 {
		return nil
	}

	keys := make([]string, len(overflow))
	for i, k := range overflow {
		keys[i] = redisKeyPrefix + k
	}
	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, keys...)
		p.LTrim(ctx, redisIndexKey, 0, int64(r.max)-1)
		return nil
	})
	return eris.Wrap(err, "viewcache: trim index")
}
