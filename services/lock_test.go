package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func exerciseLocker(t *testing.T, locker RoomLocker) {
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		inside  int32
		overlap int32
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(ctx, 1)
			if !assert.NoError(t, err) {
				return
			}
			if atomic.AddInt32(&inside, 1) > 1 {
				atomic.StoreInt32(&overlap, 1)
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()
	assert.Zero(t, atomic.LoadInt32(&overlap))

	// other rooms are independent
	unlock1, err := locker.Lock(ctx, 1)
	require.NoError(t, err)
	unlock2, err := locker.Lock(ctx, 2)
	require.NoError(t, err)
	unlock2()

	short, cancel := context.WithTimeout(ctx, 30*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(short, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock1()
	unlock1()
	unlock, err := locker.Lock(ctx, 1)
	require.NoError(t, err)
	unlock()
}

func TestMemoryRoomLocker(t *testing.T) {
	locker := NewMemoryRoomLocker()
	exerciseLocker(t, locker)
	assert.Empty(t, locker.rooms)
}

func TestRedisRoomLocker(t *testing.T) {
	mr, client := newTestRedis(t)
	exerciseLocker(t, NewRedisRoomLocker(client, "test", time.Second))
	assert.False(t, mr.Exists("test:lock:room:1"))
}

func TestRedisRoomLockerKeepsForeignLock(t *testing.T) {
	mr, client := newTestRedis(t)
	locker := NewRedisRoomLocker(client, "test", time.Second)

	unlock, err := locker.Lock(context.Background(), 3)
	require.NoError(t, err)
	// the key expired and someone else took it
	require.NoError(t, mr.Set("test:lock:room:3", "someone-else"))
	unlock()

	got, err := mr.Get("test:lock:room:3")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}
