package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// BackendConfig holds connection settings for the video-generation API.
type BackendConfig struct {
	// BaseURL is the root URL of the backend service.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// RequestTimeoutSec bounds a single HTTP request.
	RequestTimeoutSec int `mapstructure:"request_timeout_sec" yaml:"request_timeout_sec"`
}

// GenerateConfig holds defaults for new generation jobs and the poll
// loop tuning.
type GenerateConfig struct {
	// DefaultAvatarID is used when no avatar is selected.
	DefaultAvatarID int `mapstructure:"default_avatar_id" yaml:"default_avatar_id"`

	// Language is the fixed narration language tag sent with every job.
	Language string `mapstructure:"language" yaml:"language"`

	// SubmitTimeoutSec bounds the job creation call.
	SubmitTimeoutSec int `mapstructure:"submit_timeout_sec" yaml:"submit_timeout_sec"`

	// MaxPollAttempts caps the number of status polls before giving up.
	MaxPollAttempts int `mapstructure:"max_poll_attempts" yaml:"max_poll_attempts"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme               string `mapstructure:"theme" yaml:"theme"`
	CarouselIntervalSec int    `mapstructure:"carousel_interval_sec" yaml:"carousel_interval_sec"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Backend  BackendConfig  `mapstructure:"backend" yaml:"backend"`
	Generate GenerateConfig `mapstructure:"generate" yaml:"generate"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/vidface/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "vidface", "config.yaml")
}

// DefaultDataPath returns the default path for the local SQLite cache.
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "vidface.db")
	}
	return filepath.Join(home, ".local", "share", "vidface", "vidface.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Backend: BackendConfig{
			BaseURL:           "http://127.0.0.1:8000",
			RequestTimeoutSec: 30,
		},
		Generate: GenerateConfig{
			DefaultAvatarID:  DefaultAvatarID,
			Language:         "en",
			SubmitTimeoutSec: 30,
			MaxPollAttempts:  120,
		},
		Display: DisplayConfig{
			Theme:               "default",
			CarouselIntervalSec: 3,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("backend.base_url", "http://127.0.0.1:8000")
	v.SetDefault("backend.request_timeout_sec", 30)
	v.SetDefault("generate.default_avatar_id", DefaultAvatarID)
	v.SetDefault("generate.language", "en")
	v.SetDefault("generate.submit_timeout_sec", 30)
	v.SetDefault("generate.max_poll_attempts", 120)
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.carousel_interval_sec", 3)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("backend", cfg.Backend)
	v.Set("generate", cfg.Generate)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
