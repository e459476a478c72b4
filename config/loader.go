package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// osUserHomeDir is a variable so tests can point it at a temp dir.
var osUserHomeDir = os.UserHomeDir

// expandPath resolves paths like "~/" to the user's home directory.
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := osUserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// GetConfigPath constructs the full path to a config file in ~/Dexter/config.
func GetConfigPath(filename string) (string, error) {
	return expandPath(filepath.Join("~/Dexter/config", filename))
}

// loadAndUnmarshal reads a JSON file from the config directory and unmarshals it into the provided interface.
func loadAndUnmarshal(filename string, v interface{}) error {
	path, err := GetConfigPath(filename)
	if err != nil {
		return fmt.Errorf("could not get config path for %s: %w", filename, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file %s: %w", filename, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("could not decode config file %s: %w", filename, err)
	}

	return nil
}

// saveConfig writes v to the config directory, creating it if needed.
func saveConfig(filename string, v interface{}) error {
	path, err := GetConfigPath(filename)
	if err != nil {
		return fmt.Errorf("could not get config path for %s: %w", filename, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filename, err)
	}
	return os.WriteFile(path, data, 0644)
}

// loadOrInit loads filename into a copy of defaults, writing defaults to disk
// when the file does not exist yet.
func loadOrInit[T any](filename string, defaults T) (*T, error) {
	cfg := defaults
	err := loadAndUnmarshal(filename, &cfg)
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err := saveConfig(filename, defaults); err != nil {
		return nil, err
	}
	return &defaults, nil
}

// LoadService loads lipi.json.
func LoadService() (*ServiceConfig, error) {
	return loadOrInit(ServiceFile, DefaultServiceConfig())
}

// LoadAllConfigs loads every config file, creating missing ones with defaults,
// and validates the service settings.
func LoadAllConfigs() (*AllConfig, error) {
	service, err := LoadService()
	if err != nil {
		return nil, err
	}
	if err := service.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ServiceFile, err)
	}

	discord, err := loadOrInit(DiscordFile, DiscordConfig{})
	if err != nil {
		return nil, err
	}

	cache, err := loadOrInit(CacheFile, DefaultCacheConfig())
	if err != nil {
		return nil, err
	}

	return &AllConfig{
		Service: service,
		Discord: discord,
		Cache:   cache,
	}, nil
}
