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

	// TwoFactorCode is the fixed code accepted by the mocked verification
	// step. Stands in for a real verification backend.
	TwoFactorCode string        `env:"TWO_FACTOR_CODE, default=0000"`
	SessionTTL    time.Duration `env:"SESSION_TTL,     default=24h"`
	ToastTTL      time.Duration `env:"TOAST_TTL,       default=5s"`

	Upstream UpstreamConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

// UpstreamConfig points at the commerce API the console talks to.
type UpstreamConfig struct {
	BaseURL string `env:"UPSTREAM_BASE_URL, default=http://localhost:9000"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=console_gateway"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
