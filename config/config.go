package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"studymeet/log"

	"github.com/joho/godotenv"
)

const ConfigFileName = "config.json"

// DefaultServerURL is used when neither the environment nor the config file
// provides a backend address.
const DefaultServerURL = "http://localhost:8001"

// EnvServerURL overrides the configured backend address when set.
const EnvServerURL = "STUDYMEET_SERVER_URL"

// GetConfigDir returns the path to the application's configuration directory.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".studymeet"), nil
}

// Config represents the application configuration.
type Config struct {
	// ServerURL is the base URL of the study session backend.
	ServerURL string `json:"server_url"`
	// PollIntervalSeconds is the period of the background refresh of the
	// session directory.
	PollIntervalSeconds int `json:"poll_interval_seconds"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ServerURL:           DefaultServerURL,
		PollIntervalSeconds: 10,
	}
}

// LoadConfig loads the configuration from disk, then applies environment
// overrides. A .env file in the working directory is honored first, the way
// the backend deployments expect. If anything cannot be read we fall back to
// defaults rather than failing.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	cfg := loadConfigFile()

	if url := os.Getenv(EnvServerURL); url != "" {
		cfg.ServerURL = url
	}
	if raw := os.Getenv("STUDYMEET_POLL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cfg.PollIntervalSeconds = secs
		} else {
			log.Warnf("ignoring invalid STUDYMEET_POLL_SECONDS=%q", raw)
		}
	}

	if cfg.PollIntervalSeconds <= 0 {
		cfg.PollIntervalSeconds = DefaultConfig().PollIntervalSeconds
	}
	return cfg
}

func loadConfigFile() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.Errorf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.Warnf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.Warnf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		log.Errorf("failed to parse config file: %v", err)
		return DefaultConfig()
	}
	if config.ServerURL == "" {
		config.ServerURL = DefaultServerURL
	}

	return &config
}

// saveConfig saves the configuration to disk.
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages.
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
