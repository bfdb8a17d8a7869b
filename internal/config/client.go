package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const DefaultRelayURL = "http://localhost:8080"

// ClientConfig configures the terminal chat client.
type ClientConfig struct {
	RelayURL string `toml:"relay_url"`
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		RelayURL: DefaultRelayURL,
		LogLevel: "info",
		LogFile:  defaultClientLogPath(),
	}
}

// LoadClient reads an optional TOML file, then applies RELAY_URL, LOG_LEVEL
// and LOG_FILE from the environment.
func LoadClient(path string) (ClientConfig, error) {
	cfg := DefaultClientConfig()
	if strings.TrimSpace(path) != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to decode TOML file: %w", err)
		}
	}
	cfg.RelayURL = getEnvDefault("RELAY_URL", cfg.RelayURL)
	cfg.LogLevel = getEnvDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnvDefault("LOG_FILE", cfg.LogFile)

	if !strings.HasPrefix(cfg.RelayURL, "http://") && !strings.HasPrefix(cfg.RelayURL, "https://") {
		return cfg, fmt.Errorf("relay_url must be an http(s) URL, got %q", cfg.RelayURL)
	}
	return cfg, nil
}

func defaultClientLogPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(homeDir) == "" {
		return filepath.Join(".portfolio-chat", "logs", "client.log")
	}
	return filepath.Join(homeDir, ".portfolio-chat", "logs", "client.log")
}
