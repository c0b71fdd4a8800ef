// Package settings persists editor preferences across sessions as a
// JSON file: the discovery connection, catalog location, plugin
// directories and the recent-pipeline list.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const maxRecentPipelines = 10

// Settings is everything the editor remembers between sessions.
type Settings struct {
	DiscoveryURL    string   `json:"discovery_url,omitempty"`
	CatalogPath     string   `json:"catalog_path,omitempty"`
	PluginDirs      []string `json:"plugin_dirs,omitempty"`
	RecentPipelines []string `json:"recent_pipelines,omitempty"`
	LogLevel        string   `json:"log_level,omitempty"`
}

// Store reads and writes settings at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store backed by path. The file need not exist.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath places the settings file under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}

	return filepath.Join(dir, "pipegraph", "settings.json"), nil
}

// Load returns the persisted settings, or defaults when the file does
// not exist yet.
func (s *Store) Load() (*Settings, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &Settings{LogLevel: "info"}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if settings.LogLevel == "" {
		settings.LogLevel = "info"
	}

	return &settings, nil
}

// Save persists the settings, creating parent directories as needed.
func (s *Store) Save(settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}

// RememberPipeline moves a pipeline path to the front of the recent
// list, bounded to the newest entries, and persists the change.
func (s *Store) RememberPipeline(path string) error {
	settings, err := s.Load()
	if err != nil {
		return err
	}

	recent := []string{path}

	for _, existing := range settings.RecentPipelines {
		if existing != path {
			recent = append(recent, existing)
		}
	}

	if len(recent) > maxRecentPipelines {
		recent = recent[:maxRecentPipelines]
	}

	settings.RecentPipelines = recent

	return s.Save(settings)
}
