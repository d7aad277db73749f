package jobs

import (
	"context"
	"time"

	"hotel/services/logger"

	"github.com/robfig/cron/v3"
)

// RoomCacheWarmer recomputes the availability list for the new day.
type RoomCacheWarmer interface {
	Warm(ctx context.Context) error
}

// MidnightSpec fires at 00:00 in the scheduler's location.
const MidnightSpec = "0 0 * * *"

const warmTimeout = time.Minute

// InitCronJobs registers the scheduled jobs and starts c.
func InitCronJobs(c *cron.Cron, warmer RoomCacheWarmer, log logger.Logger) error {
	if _, err := c.AddFunc(MidnightSpec, WarmRoomCache(warmer, log)); err != nil {
		return err
	}
	c.Start()
	log.Info("Cron jobs initialized successfully", nil)
	return nil
}

// WarmRoomCache returns the job that refreshes the room cache, since the set
// of rooms booked "today" changes at midnight.
func WarmRoomCache(warmer RoomCacheWarmer, log logger.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
		defer cancel()
		start := time.Now()
		if err := warmer.Warm(ctx); err != nil {
			log.Error("room cache warm failed", map[string]interface{}{"error": err.Error()})
			return
		}
		log.Info("room cache warmed", map[string]interface{}{"took": time.Since(start).String()})
	}
}
