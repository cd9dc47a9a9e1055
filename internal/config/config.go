// ABOUTME: Configuration management for postboard with YAML config loading.
// ABOUTME: Handles API endpoint, local-id threshold, default user, and log level.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/2389-research/postboard/internal/storage"
	"github.com/2389-research/postboard/internal/store"
)

// Defaults applied to zero-valued settings.
const (
	DefaultBaseURL          = storage.DefaultBaseURL
	DefaultTimeoutSeconds   = int(storage.DefaultTimeout / time.Second)
	DefaultLocalIDThreshold = store.DefaultLocalIDThreshold
	DefaultUserID           = 1
)

// Config stores postboard configuration loaded from ~/.config/postboard/config.yaml.
type Config struct {
	API   APIConfig   `yaml:"api"`
	Store StoreConfig `yaml:"store"`
	User  UserConfig  `yaml:"user"`
	Log   LogConfig   `yaml:"log"`
}

// APIConfig holds the remote posts API settings.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// StoreConfig holds post store settings.
type StoreConfig struct {
	// LocalIDThreshold is the first id treated as local-only for posts
	// without an origin tag.
	LocalIDThreshold int `yaml:"local_id_threshold"`
}

// UserConfig identifies the author of new posts.
type UserConfig struct {
	ID int `yaml:"id"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// WithDefaults returns a copy with every zero-valued setting filled in.
func (c Config) WithDefaults() Config {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Store.LocalIDThreshold <= 0 {
		c.Store.LocalIDThreshold = DefaultLocalIDThreshold
	}
	if c.User.ID <= 0 {
		c.User.ID = DefaultUserID
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	return c
}

// Timeout returns the per-request API timeout.
func (c *Config) Timeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return storage.DefaultTimeout
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// LogLevel parses the configured level, defaulting to info.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "postboard", "config.yaml"), nil
}

// Load reads config from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Config{}.WithDefaults()
			return &cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg = cfg.WithDefaults()
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
