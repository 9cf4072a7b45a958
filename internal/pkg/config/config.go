package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Draft store backends.
const (
	DraftStoreMemory = "memory"
	DraftStoreRedis  = "redis"
	DraftStoreMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
	Drafts  DraftConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:8000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
}

type SessionConfig struct {
	Cookie string `env:"SESSION_COOKIE,  default=jwt"`
	MaxAge int    `env:"SESSION_MAX_AGE, default=50000"`
	Secure bool   `env:"SESSION_SECURE,  default=true"`
	// JWTSecret enables signature checks of backend tokens when set.
	JWTSecret string `env:"SESSION_JWT_SECRET"`
}

type DraftConfig struct {
	Store string        `env:"DRAFT_STORE, default=memory"`
	TTL   time.Duration `env:"DRAFT_TTL,   default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsDevelopment reports whether the portal runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate rejects settings the portal cannot start with.
func (c *Config) Validate() error {
	switch c.Drafts.Store {
	case DraftStoreMemory, DraftStoreRedis, DraftStoreMongo:
	default:
		return fmt.Errorf("config: unknown DRAFT_STORE %q", c.Drafts.Store)
	}
	if c.Backend.URL == "" {
		return fmt.Errorf("config: BACKEND_URL is required")
	}
	if c.Session.Cookie == "" {
		return fmt.Errorf("config: SESSION_COOKIE must not be empty")
	}
	return nil
}

// Load reads an optional .env file, then the environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
