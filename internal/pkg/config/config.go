package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// OrgEmailSuffix is the mandatory domain suffix for staff emails.
	OrgEmailSuffix string        `env:"ORG_EMAIL_SUFFIX, default=@zafiri.go.tz"`
	SessionTTL     time.Duration `env:"SESSION_TTL,      default=12h"`
	AuditWorkers   int           `env:"AUDIT_WORKERS,    default=4"`

	Directory DirectoryConfig
	Redis     RedisConfig
	Mongo     MongoConfig
}

// DirectoryConfig points at the institutional directory backend.
type DirectoryConfig struct {
	BaseURL string        `env:"DIRECTORY_BASE_URL, default=http://localhost:8000"`
	Timeout time.Duration `env:"DIRECTORY_TIMEOUT,  default=15s"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=staff_portal"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
