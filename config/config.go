package config

import (
	"errors"
	"fmt"
	"time"

	"prioritix/utils"
)

type ServerConfig struct {
	Port           string
	GinMode        string
	AllowedOrigins []string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

type AuthConfig struct {
	SecretKey      string
	Issuer         string
	AccessTokenTTL time.Duration
}

type RedisConfig struct {
	URL string // empty disables token revocation checks
}

type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxAgeDays int
}

type TodosConfig struct {
	DefaultPageLimit int
	MaxPageLimit     int
	TimeZone         string
}

type AppConfig struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Log      LogConfig
	Todos    TodosConfig
}

// Load reads the configuration from the environment. Call godotenv.Load first
// if a .env file should be honoured.
func Load() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Port:    utils.GetEnvAsString("PORT", "5000"),
			GinMode: utils.GetEnvAsString("GIN_MODE", "release"),
			AllowedOrigins: utils.GetEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:5173",
				"https://prioritix.vercel.app",
			}),
			RequestTimeout: utils.GetEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
			MaxBodyBytes:   utils.GetEnvAsInt64("MAX_BODY_BYTES", 1<<20),
		},
		Database: LoadDatabaseConfig(),
		Auth: AuthConfig{
			SecretKey:      utils.GetEnvAsString("JWT_SECRET_KEY", ""),
			Issuer:         utils.GetEnvAsString("JWT_ISSUER", ""),
			AccessTokenTTL: utils.GetEnvAsDuration("JWT_EXPIRATION_TIME", time.Hour),
		},
		Redis: RedisConfig{
			URL: utils.GetEnvAsString("REDIS_URL", ""),
		},
		Log: LogConfig{
			Level:      utils.GetEnvAsString("LOG_LEVEL", "info"),
			Format:     utils.GetEnvAsString("LOG_FORMAT", "json"),
			File:       utils.GetEnvAsString("LOG_FILE", ""),
			MaxSizeMB:  utils.GetEnvAsInt("LOG_MAX_SIZE_MB", 100),
			MaxAgeDays: utils.GetEnvAsInt("LOG_MAX_AGE_DAYS", 14),
		},
		Todos: TodosConfig{
			DefaultPageLimit: utils.GetEnvAsInt("DEFAULT_PAGE_LIMIT", 10),
			MaxPageLimit:     utils.GetEnvAsInt("MAX_PAGE_LIMIT", 100),
			TimeZone:         utils.GetEnvAsString("APP_TIMEZONE", "UTC"),
		},
	}
}

func (c AppConfig) Validate() error {
	var errs []error
	if c.Auth.SecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	}
	if c.Database.URI == "" {
		errs = append(errs, errors.New("MONGO_URI is required"))
	}
	if c.Todos.DefaultPageLimit < 1 {
		errs = append(errs, fmt.Errorf("DEFAULT_PAGE_LIMIT must be positive, got %d", c.Todos.DefaultPageLimit))
	}
	if c.Todos.MaxPageLimit < c.Todos.DefaultPageLimit {
		errs = append(errs, fmt.Errorf("MAX_PAGE_LIMIT (%d) is below DEFAULT_PAGE_LIMIT (%d)",
			c.Todos.MaxPageLimit, c.Todos.DefaultPageLimit))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Location resolves APP_TIMEZONE, which decides calendar days and months in analytics.
func (c AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Todos.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Todos.TimeZone, err)
	}
	return loc, nil
}

func (c ServerConfig) Addr() string {
	return ":" + c.Port
}
