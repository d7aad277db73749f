package services

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// GetFromRedis decodes the JSON value stored at key into target. It reports
// false without error when the key is absent.
func GetFromRedis(ctx context.Context, rdb redis.UniversalClient, key string, target interface{}) (bool, error) {
	cached, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(cached, target); err != nil {
		return false, err
	}
	return true, nil
}

var setIfVersionScript = redis.NewScript(`
if (redis.call("GET", KEYS[1]) or "0") ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
return 1
`)

// GetVersion reads the counter at key, zero when absent.
func GetVersion(ctx context.Context, rdb redis.UniversalClient, key string) (int64, error) {
	version, err := rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

// SetToRedisIfVersion stores value as JSON at key only while the counter at
// versionKey still equals version. It reports whether the value was written.
func SetToRedisIfVersion(ctx context.Context, rdb redis.UniversalClient, versionKey string, version int64, key string, value interface{}, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	written, err := setIfVersionScript.Run(ctx, rdb, []string{versionKey, key}, version, string(data), ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return written == 1, nil
}

// DeleteByPattern removes every key matching pattern.
func DeleteByPattern(ctx context.Context, rdb redis.UniversalClient, pattern string) error {
	iter := rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}
