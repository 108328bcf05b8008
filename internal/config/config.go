package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	MinSearchDepth = 1
	MaxSearchDepth = 8
)

type Config struct {
	Port            string        `validate:"required,numeric"`
	SearchDepth     int           `validate:"min=1,max=8"`
	DefaultStrategy string        `validate:"oneof=minimax heuristic"`
	AllowedOrigins  []string      `validate:"dive,required"`
	FrontendURL     string        `validate:"omitempty,url"`
	SessionIdle     time.Duration `validate:"gt=0"`
	CleanupInterval time.Duration `validate:"gt=0"`
	LogLevel        string        `validate:"oneof=debug info warn error"`
	OTLPEndpoint    string
	ServiceName     string `validate:"required"`
	ServiceVersion  string
}

// LoadEnvFiles loads a .env from the working directory or its parent, if present.
func LoadEnvFiles() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			slog.Info("No .env file found")
		}
	}
}

func LoadConfig() (*Config, error) {
	port := GetEnv("PORT", "8080")

	// search depth is clamped rather than rejected so a typo never stalls the AI
	depth := GetEnvAsInt("SEARCH_DEPTH", 5)
	if depth < MinSearchDepth {
		depth = MinSearchDepth
	}
	if depth > MaxSearchDepth {
		depth = MaxSearchDepth
	}

	strategy := strings.ToLower(GetEnv("AI_STRATEGY", "minimax"))

	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOrigins := []string{frontendURL}
	if extras := GetEnv("ALLOWED_ORIGINS", ""); extras != "" {
		for _, origin := range strings.Split(extras, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	cfg := &Config{
		Port:            port,
		SearchDepth:     depth,
		DefaultStrategy: strategy,
		AllowedOrigins:  allowedOrigins,
		FrontendURL:     frontendURL,
		SessionIdle:     time.Duration(GetEnvAsInt("SESSION_IDLE_MINUTES", 30)) * time.Minute,
		CleanupInterval: time.Duration(GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 10)) * time.Minute,
		LogLevel:        strings.ToLower(GetEnv("LOG_LEVEL", "info")),
		OTLPEndpoint:    GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:     GetEnv("OTEL_SERVICE_NAME", "connect4-solo"),
		ServiceVersion:  GetEnv("SERVICE_VERSION", "v0.1.0"),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// SlogLevel maps LogLevel onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("Invalid integer value, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return value
}
