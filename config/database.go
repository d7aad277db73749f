package config

import (
	"context"
	"fmt"

	"hotel/repository"
	"hotel/services/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDB opens the relational database selected by cfg.Driver.
func ConnectDB(cfg StoreConfig, production bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	case DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("driver %q is not a database", cfg.Driver)
	}

	level := gormlogger.Warn
	if production {
		level = gormlogger.Error
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Driver, err)
	}
	if cfg.Driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite allows one writer at a time
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// OpenStore returns the entity store for cfg, migrating the schema of
// database backings.
func OpenStore(ctx context.Context, cfg StoreConfig, production bool, log logger.Logger) (repository.Store, error) {
	if cfg.Driver == DriverMemory {
		log.Info("using in-memory store", nil)
		return repository.NewMemoryStore(), nil
	}
	db, err := ConnectDB(cfg, production)
	if err != nil {
		return nil, err
	}
	store := repository.NewGormStore(db)
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	log.Info("Successfully connected to db", map[string]interface{}{"driver": cfg.Driver})
	return store, nil
}
