// Package app wires the store, services and HTTP layer into one server.
package app

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/controllers"
	"hotel/graph"
	"hotel/jobs"
	"hotel/models"
	"hotel/repository"
	"hotel/routes"
	"hotel/services"
	"hotel/services/logger"
	"hotel/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

const redisPrefix = "hotel"

type Options struct {
	Config *config.Config
	Store  repository.Store
	// Redis is optional; without it locks and the room cache stay in process.
	Redis  redis.UniversalClient
	Logger logger.Logger
}

type App struct {
	Router   *gin.Engine
	Melody   *melody.Melody
	Cron     *cron.Cron
	Store    repository.Store
	Auth     *services.AuthService
	Bookings *services.BookingService
	Rooms    *services.RoomService
	Tokens   services.TokenIssuer
	log      logger.Logger
}

func New(opts Options) (*App, error) {
	cfg, log := opts.Config, opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	router, m, c := config.InitApp(cfg)

	var (
		locker services.RoomLocker = services.NewMemoryRoomLocker()
		cache                      = services.NewNopRoomCache()
	)
	if opts.Redis != nil {
		locker = services.NewRedisRoomLocker(opts.Redis, redisPrefix, 0)
		cache = services.NewRedisRoomCache(opts.Redis, redisPrefix, cfg.Redis.RoomCacheTTL)
	}

	tokens := services.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	a := &App{
		Router: router,
		Melody: m,
		Cron:   c,
		Store:  opts.Store,
		Tokens: tokens,
		Auth: services.NewAuthService(opts.Store.Users(), services.NewBcryptHasher(cfg.Auth.BcryptCost), tokens,
			log.WithFields(map[string]interface{}{"service": "auth"})),
		Bookings: services.NewBookingService(services.BookingServiceOptions{
			Store:    opts.Store,
			Locker:   locker,
			Cache:    cache,
			Notifier: notification.NewMelodyService(m),
			Logger:   log.WithFields(map[string]interface{}{"service": "booking"}),
		}),
		Rooms: services.NewRoomService(services.RoomServiceOptions{
			Store:  opts.Store,
			Cache:  cache,
			Logger: log.WithFields(map[string]interface{}{"service": "room"}),
		}),
		log: log,
	}

	schema, err := graph.NewSchema(&graph.Resolver{
		Auth:     a.Auth,
		Bookings: a.Bookings,
		Rooms:    a.Rooms,
		Log:      log.WithFields(map[string]interface{}{"component": "graphql"}),
	})
	if err != nil {
		return nil, fmt.Errorf("build graphql schema: %w", err)
	}
	routes.SetupRoutes(router, tokens,
		controllers.NewGraphQLController(schema, log),
		controllers.NewNotificationController(m, log))
	return a, nil
}

// StartJobs schedules the cron jobs.
func (a *App) StartJobs() error {
	return jobs.InitCronJobs(a.Cron, a.Rooms, a.log)
}

// Seed creates the configured admin and, when asked, the demo rooms.
func (a *App) Seed(ctx context.Context, seed config.SeedConfig) error {
	if seed.AdminEmail != "" {
		user, created, err := a.Auth.SeedAdmin(ctx, seed.AdminEmail, seed.AdminPassword, seed.AdminFullName)
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		if created {
			a.log.Info("admin account created", map[string]interface{}{"user_id": user.ID, "email": user.Email})
		}
	}
	if !seed.Demo {
		return nil
	}
	existing, err := a.Store.Rooms().FindMany(ctx, repository.RoomFilter{})
	if err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, room := range DemoRooms() {
		room := room
		if err := a.Store.Rooms().Create(ctx, &room); err != nil {
			return fmt.Errorf("seed rooms: %w", err)
		}
	}
	a.log.Info("demo rooms created", map[string]interface{}{"count": len(DemoRooms())})
	return nil
}

func DemoRooms() []models.Room {
	return []models.Room{
		{Type: models.RoomTypeSingle, Price: 20},
		{Type: models.RoomTypeDouble, Price: 35},
		{Type: models.RoomTypeSuite, Price: 100},
	}
}

// Close stops the jobs and the websocket hub and releases the store.
func (a *App) Close() error {
	<-a.Cron.Stop().Done()
	_ = a.Melody.Close()
	return a.Store.Close()
}
