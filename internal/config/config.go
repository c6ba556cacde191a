package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/beertally/pkg/logger"
)

const (
	StoreRedis    = "redis"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// DefaultParticipants seeds an empty registry
var DefaultParticipants = []string{"aaron", "nick", "aj", "isaac", "sam"}

// Config holds the process configuration
type Config struct {
	HTTPAddr string

	// Store selects the persistence backend: redis, sqlite or postgres
	Store string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SQLitePath  string
	PostgresDSN string

	// Location decides when the tally day turns over
	Location *time.Location

	DefaultParticipants []string
	CORSOrigins         []string

	// Discord transport is disabled when DiscordToken is empty
	DiscordToken  string
	ApplicationID string
	GuildID       string

	Log *logger.Config
}

// Load reads a .env file if present and then the environment
func Load() (*Config, error) {
	// A missing .env is fine; real env vars still apply
	_ = godotenv.Load()

	return FromEnv()
}

// FromEnv builds the configuration from environment variables
func FromEnv() (*Config, error) {
	cfg := &Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		Store:         strings.ToLower(getEnv("STORE_DRIVER", StoreRedis)),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "beertally.db"),
		PostgresDSN:   getEnv("POSTGRES_DSN", ""),
		DiscordToken:  getEnv("DISCORD_TOKEN", ""),
		ApplicationID: getEnv("APPLICATION_ID", ""),
		GuildID:       getEnv("GUILD_ID", ""),
		Log: &logger.Config{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	loc, err := time.LoadLocation(getEnv("TALLY_TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid TALLY_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	cfg.DefaultParticipants = splitList(getEnv("DEFAULT_PARTICIPANTS", ""))
	if len(cfg.DefaultParticipants) == 0 {
		cfg.DefaultParticipants = append([]string(nil), DefaultParticipants...)
	}

	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "*"))

	switch cfg.Store {
	case StoreRedis, StoreSQLite:
	case StorePostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("POSTGRES_DSN is required when STORE_DRIVER is %s", StorePostgres)
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Store)
	}

	if cfg.DiscordToken != "" && cfg.ApplicationID == "" {
		return nil, fmt.Errorf("APPLICATION_ID is required when DISCORD_TOKEN is set")
	}

	return cfg, nil
}

// DiscordEnabled reports whether the Discord bot should start
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
