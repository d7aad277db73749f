package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvProduction = "production"

	// used when JWT_SECRET is unset outside production
	developmentSecret = "development-secret"
)

type Config struct {
	AppEnv   string
	LogLevel string
	Server   ServerConfig
	Store    StoreConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Seed     SeedConfig
}

type ServerConfig struct {
	Port string
}

type StoreConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

type RedisConfig struct {
	Addr     string
	User     string
	Password string
	DB       int
	// RoomCacheTTL bounds how long an availability list is served.
	RoomCacheTTL time.Duration
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminFullName string
	Demo          bool
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// DSN is the Postgres connection string.
func (s StoreConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		s.Host, s.User, s.Password, s.Name, s.Port, s.SSLMode)
}

// LoadEnv reads .env into the process environment when the file exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_PORT", "8083")

	v.SetDefault("STORE_DRIVER", DriverMemory)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "hotel")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("SQLITE_PATH", "hotel.db")

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ROOM_CACHE_TTL", "5m")

	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("BCRYPT_COST", 10)

	v.SetDefault("SEED_DEMO", false)
	return v
}

// Load builds the configuration from the environment.
func Load() (*Config, error) {
	LoadEnv()
	return load(newViper())
}

func load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppEnv:   v.GetString("APP_ENV"),
		LogLevel: strings.ToLower(v.GetString("LOG_LEVEL")),
		Server: ServerConfig{
			Port: v.GetString("SERVER_PORT"),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(v.GetString("STORE_DRIVER")),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			Name:       v.GetString("DB_NAME"),
			SSLMode:    v.GetString("DB_SSL_MODE"),
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		Redis: RedisConfig{
			Addr:         v.GetString("REDIS_ADDR"),
			User:         v.GetString("REDIS_USER"),
			Password:     v.GetString("REDIS_PASSWORD"),
			DB:           v.GetInt("REDIS_DB"),
			RoomCacheTTL: v.GetDuration("ROOM_CACHE_TTL"),
		},
		Auth: AuthConfig{
			JWTSecret:  v.GetString("JWT_SECRET"),
			TokenTTL:   v.GetDuration("TOKEN_TTL"),
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Seed: SeedConfig{
			AdminEmail:    v.GetString("ADMIN_EMAIL"),
			AdminPassword: v.GetString("ADMIN_PASSWORD"),
			AdminFullName: v.GetString("ADMIN_FULL_NAME"),
			Demo:          v.GetBool("SEED_DEMO"),
		},
	}

	switch cfg.Store.Driver {
	case DriverMemory, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	if cfg.Auth.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.Auth.JWTSecret = developmentSecret
	}
	return cfg, nil
}
