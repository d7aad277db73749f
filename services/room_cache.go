package services

import (
	"context"
	"time"

	"hotel/metrics"
	"hotel/models"

	"github.com/redis/go-redis/v9"
)

const DefaultRoomCacheTTL = 5 * time.Minute

// RoomCache keeps the list of rooms free on a given day. Invalidate bumps a
// generation counter; SetAvailable drops a list computed under an older
// generation, so a read racing a booking cannot cache stale availability.
type RoomCache interface {
	GetAvailable(ctx context.Context, day time.Time) ([]models.Room, bool, error)
	// Generation must be read before the rooms are loaded from the store.
	Generation(ctx context.Context) (int64, error)
	SetAvailable(ctx context.Context, day time.Time, generation int64, rooms []models.Room) (bool, error)
	Invalidate(ctx context.Context) error
}

// RedisRoomCache keys entries by calendar day so they roll over at midnight.
type RedisRoomCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisRoomCache(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisRoomCache {
	if ttl <= 0 {
		ttl = DefaultRoomCacheTTL
	}
	return &RedisRoomCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisRoomCache) key(day time.Time) string {
	return c.prefix + ":rooms:available:" + models.FormatDate(day)
}

func (c *RedisRoomCache) generationKey() string {
	return c.prefix + ":rooms:generation"
}

func (c *RedisRoomCache) GetAvailable(ctx context.Context, day time.Time) ([]models.Room, bool, error) {
	var rooms []models.Room
	found, err := GetFromRedis(ctx, c.client, c.key(day), &rooms)
	if err != nil {
		return nil, false, err
	}
	if !found {
		metrics.RecordCacheMiss()
		return nil, false, nil
	}
	metrics.RecordCacheHit()
	if rooms == nil {
		rooms = []models.Room{}
	}
	return rooms, true, nil
}

func (c *RedisRoomCache) Generation(ctx context.Context) (int64, error) {
	return GetVersion(ctx, c.client, c.generationKey())
}

func (c *RedisRoomCache) SetAvailable(ctx context.Context, day time.Time, generation int64, rooms []models.Room) (bool, error) {
	if rooms == nil {
		rooms = []models.Room{}
	}
	return SetToRedisIfVersion(ctx, c.client, c.generationKey(), generation, c.key(day), rooms, c.ttl)
}

// Invalidate bumps the generation before deleting so that writers holding
// the old generation are refused.
func (c *RedisRoomCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.generationKey()).Err(); err != nil {
		return err
	}
	return DeleteByPattern(ctx, c.client, c.prefix+":rooms:available:*")
}

type nopRoomCache struct{}

// NewNopRoomCache returns a cache that never holds anything.
func NewNopRoomCache() RoomCache { return nopRoomCache{} }

func (nopRoomCache) GetAvailable(context.Context, time.Time) ([]models.Room, bool, error) {
	return nil, false, nil
}

func (nopRoomCache) Generation(context.Context) (int64, error) { return 0, nil }

func (nopRoomCache) SetAvailable(context.Context, time.Time, int64, []models.Room) (bool, error) {
	return false, nil
}

func (nopRoomCache) Invalidate(context.Context) error { return nil }
