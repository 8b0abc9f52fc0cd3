package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/nikbrunner/gallery/internal/gallery"
	"github.com/nikbrunner/gallery/internal/model"
)

// Config holds application configuration.
type Config struct {
	Sources         map[string]string `json:"sources"`         // category name -> document URL or path
	PageSize        int               `json:"pageSize"`        // items revealed per "load more"
	SwipeThreshold  int               `json:"swipeThreshold"`  // drag distance in cells
	DefaultCategory string            `json:"defaultCategory"` // category shown on start
	DefaultLayout   string            `json:"defaultLayout"`   // compact, grid or single
	TimeoutSeconds  int               `json:"timeoutSeconds"`  // per fetch
	LogFile         string            `json:"logFile"`         // empty disables logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Sources:         map[string]string{},
		PageSize:        gallery.DefaultPageSize,
		SwipeThreshold:  gallery.DefaultSwipeThreshold,
		DefaultCategory: model.CategoryComic.String(),
		DefaultLayout:   model.LayoutGrid.String(),
		TimeoutSeconds:  15,
	}
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.Sources == nil {
		config.Sources = defaults.Sources
	}
	if config.PageSize <= 0 {
		config.PageSize = defaults.PageSize
	}
	if config.SwipeThreshold <= 0 {
		config.SwipeThreshold = defaults.SwipeThreshold
	}
	if config.DefaultCategory == "" {
		config.DefaultCategory = defaults.DefaultCategory
	}
	if config.DefaultLayout == "" {
		config.DefaultLayout = defaults.DefaultLayout
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = defaults.TimeoutSeconds
	}

	return &config, nil
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Timeout returns the fetch timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Category parses DefaultCategory.
func (c *Config) Category() (model.Category, error) {
	return model.ParseCategory(c.DefaultCategory)
}

// Layout parses DefaultLayout.
func (c *Config) Layout() (model.Layout, error) {
	return model.ParseLayout(c.DefaultLayout)
}

// DefaultConfigFilePath returns the default config path: ~/.config/gallery/config.json
func DefaultConfigFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "gallery", "config.json"), nil
}
