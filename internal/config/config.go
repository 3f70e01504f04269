package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/MMR-MINGriyue/focusflow/internal/constants"
)

const configFileName = "config.yaml"

// Config holds driver-level options: where snapshots live and how the
// run loop behaves. Engine settings are not in here; they belong to the
// persisted snapshot.
type Config struct {
	StorageBackend       string `yaml:"storage_backend"` // "sqlite" or "json"
	StoragePath          string `yaml:"storage_path"`
	Debug                bool   `yaml:"debug"`
	NotificationsEnabled bool   `yaml:"notifications_enabled"`
	SoundEnabled         bool   `yaml:"sound_enabled"`
	TickIntervalSec      int    `yaml:"tick_interval_sec"`
}

// Default returns the built-in driver configuration.
func Default() Config {
	return Config{
		StorageBackend:       "sqlite",
		NotificationsEnabled: true,
		SoundEnabled:         true,
		TickIntervalSec:      1,
	}
}

// Load reads the driver config from the user config dir. A missing file
// returns defaults.
func Load() (Config, error) {
	cfg := Default()
	path, err := resolveConfigPath()
	if err != nil {
		return cfg, err
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fileData fileConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}

	applyFileConfig(&cfg, fileData)
	return cfg, nil
}

// Save writes the driver config to the user config dir.
func Save(cfg Config) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ConfigDir returns the application's user config directory.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, constants.AppName), nil
}

func resolveConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// fileConfig mirrors Config with pointer booleans, so a partial file
// only overrides the keys it actually sets.
type fileConfig struct {
	StorageBackend       string `yaml:"storage_backend"`
	StoragePath          string `yaml:"storage_path"`
	Debug                *bool  `yaml:"debug"`
	NotificationsEnabled *bool  `yaml:"notifications_enabled"`
	SoundEnabled         *bool  `yaml:"sound_enabled"`
	TickIntervalSec      int    `yaml:"tick_interval_sec"`
}

func applyFileConfig(cfg *Config, fileData fileConfig) {
	if fileData.StorageBackend == "sqlite" || fileData.StorageBackend == "json" {
		cfg.StorageBackend = fileData.StorageBackend
	}
	if fileData.StoragePath != "" {
		cfg.StoragePath = fileData.StoragePath
	}
	if fileData.TickIntervalSec > 0 {
		cfg.TickIntervalSec = fileData.TickIntervalSec
	}
	if fileData.Debug != nil {
		cfg.Debug = *fileData.Debug
	}
	if fileData.NotificationsEnabled != nil {
		cfg.NotificationsEnabled = *fileData.NotificationsEnabled
	}
	if fileData.SoundEnabled != nil {
		cfg.SoundEnabled = *fileData.SoundEnabled
	}
}
