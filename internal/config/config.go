package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey is returned when the upstream credential is not configured.
// Its text is surfaced verbatim to relay callers.
var ErrMissingAPIKey = errors.New("GROQ_API_KEY environment variable is missing")

const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

type Config struct {
	Port          string
	GroqAPIKey    string
	GroqBaseURL   string
	AllowedOrigin string
	// Optional YAML persona overriding the embedded system prompt
	PersonaFile string
	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:          getEnvDefault("PORT", "8080"),
		GroqAPIKey:    strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
		GroqBaseURL:   strings.TrimRight(getEnvDefault("GROQ_BASE_URL", DefaultGroqBaseURL), "/"),
		AllowedOrigin: getEnvDefault("ALLOWED_ORIGIN", "*"),
		PersonaFile:   os.Getenv("PERSONA_FILE"),
		LogLevel:      getEnvDefault("LOG_LEVEL", "info"),
		LogFormat:     getEnvDefault("LOG_FORMAT", "json"),
		LogFile:       os.Getenv("LOG_FILE"),
	}
	if cfg.GroqAPIKey == "" {
		slog.Warn("GROQ_API_KEY is not set; chat requests will fail until provided")
	}
	return cfg
}

// Validate reports configuration that makes the relay unusable.
func (c Config) Validate() error {
	if c.GroqAPIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func getEnvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
