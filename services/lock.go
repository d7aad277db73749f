package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RoomLocker serializes booking writes per room. The returned unlock func is
// safe to call more than once.
type RoomLocker interface {
	Lock(ctx context.Context, roomID uint64) (unlock func(), err error)
}

// MemoryRoomLocker holds one lock per room inside the process.
type MemoryRoomLocker struct {
	mu    sync.Mutex
	rooms map[uint64]*roomLock
}

type roomLock struct {
	sem  chan struct{}
	refs int
}

func NewMemoryRoomLocker() *MemoryRoomLocker {
	return &MemoryRoomLocker{rooms: make(map[uint64]*roomLock)}
}

func (l *MemoryRoomLocker) Lock(ctx context.Context, roomID uint64) (func(), error) {
	l.mu.Lock()
	rl, ok := l.rooms[roomID]
	if !ok {
		rl = &roomLock{sem: make(chan struct{}, 1)}
		l.rooms[roomID] = rl
	}
	rl.refs++
	l.mu.Unlock()

	select {
	case rl.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(roomID, rl)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-rl.sem
			l.release(roomID, rl)
		})
	}, nil
}

func (l *MemoryRoomLocker) release(roomID uint64, rl *roomLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rl.refs--
	if rl.refs == 0 {
		delete(l.rooms, roomID)
	}
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisRoomLocker holds the per-room lock in Redis so it spans server
// instances. The key expires after ttl in case the holder dies.
type RedisRoomLocker struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	retry  time.Duration
}

func NewRedisRoomLocker(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisRoomLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisRoomLocker{client: client, prefix: prefix, ttl: ttl, retry: 25 * time.Millisecond}
}

func (l *RedisRoomLocker) key(roomID uint64) string {
	return fmt.Sprintf("%s:lock:room:%d", l.prefix, roomID)
}

func (l *RedisRoomLocker) Lock(ctx context.Context, roomID uint64) (func(), error) {
	key := l.key(roomID)
	token := uuid.NewString()
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire room lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// the request context may already be cancelled
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
		})
	}, nil
}
