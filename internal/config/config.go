package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	BankAPI  BankAPIConfig
	Session  SessionConfig
	Drafts   DraftConfig
	Log      LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// BankAPIConfig points at the remote banking REST API.
type BankAPIConfig struct {
	BaseURL string
}

// SessionConfig controls the token and userData cookies.
type SessionConfig struct {
	// Key is a base64 fernet key used to seal cookie values.
	Key    string
	MaxAge time.Duration
	Secure bool
}

// DraftConfig controls retention of abandoned transaction drafts.
type DraftConfig struct {
	TTL           time.Duration
	PurgeSchedule string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")

	sessionMaxAge, err := getDuration("SESSION_MAX_AGE", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	draftTTL, err := getDuration("DRAFT_TTL", time.Hour)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Env: env,
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/bank_admin.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		BankAPI: BankAPIConfig{
			BaseURL: strings.TrimRight(getEnv("BANK_API_URL", "http://chase-bank-api.vercel.app/api"), "/"),
		},
		Session: SessionConfig{
			Key:    os.Getenv("SESSION_KEY"),
			MaxAge: sessionMaxAge,
			Secure: env == "production",
		},
		Drafts: DraftConfig{
			TTL:           draftTTL,
			PurgeSchedule: getEnv("DRAFT_PURGE_SCHEDULE", "@every 15m"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	if config.Env == "production" && config.Session.Key == "" {
		return nil, fmt.Errorf("SESSION_KEY is required when APP_ENV=production")
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// IsProduction reports whether the deployment environment is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
