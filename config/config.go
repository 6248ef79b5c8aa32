package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	AppPort       string `envconfig:"APP_PORT" default:"8080"`
	AppMode       string `envconfig:"APP_MODE" default:"debug"`
	LogMode       string `envconfig:"LOG_MODE" default:"development"`
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"postgres"`

	DBHost         string `envconfig:"DB_HOST" default:"localhost"`
	DBPort         string `envconfig:"DB_PORT" default:"5432"`
	DBUser         string `envconfig:"DB_USER" default:"postgres"`
	DBPassword     string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName         string `envconfig:"DB_NAME" default:"clinic_chat"`
	DBSSLMode      string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"100"`
	DBMaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	DBAutoMigrate  bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`

	RedisEnabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	MessageRateLimit  int           `envconfig:"MESSAGE_RATE_LIMIT" default:"60"`
	MessageRateWindow time.Duration `envconfig:"MESSAGE_RATE_WINDOW" default:"60s"`
	SummaryCacheTTL   time.Duration `envconfig:"SUMMARY_CACHE_TTL" default:"30s"`

	AuthEnabled bool          `envconfig:"AUTH_ENABLED" default:"false"`
	JWTSecret   string        `envconfig:"JWT_SECRET" default:"change-me"`
	JWTExpiry   time.Duration `envconfig:"JWT_EXPIRY" default:"15m"`
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.MessageRateLimit <= 0 {
		return fmt.Errorf("MESSAGE_RATE_LIMIT must be positive")
	}
	if c.AuthEnabled && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_ENABLED is set")
	}
	return nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}
