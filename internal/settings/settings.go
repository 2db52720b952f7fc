// Package settings manages the user preference document, a flat key-value
// JSON file merged over built-in defaults. Keys the application does not know
// about survive a load/save cycle untouched.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Defaults returns the built-in values for every known preference key.
func Defaults() map[string]any {
	return map[string]any{
		"username":               "Learning Enthusiast",
		"default_category":       "General",
		"autosave_interval":      5,
		"language":               "English",
		"theme":                  "superhero",
		"font_size":              12,
		"start_maximized":        false,
		"remember_position":      true,
		"show_sidebar":           true,
		"default_study_duration": 25,
		"break_duration":         5,
		"enable_notifications":   true,
		"sound_notifications":    false,
		"daily_reminders":        true,
		"track_mood":             true,
		"auto_complete_modules":  false,
		"auto_backup":            true,
		"backup_location":        "~/Documents/LearningTracker_Backups",
	}
}

// Store holds the merged preference document bound to a file path.
type Store struct {
	path  string
	viper *viper.Viper
}

// Load reads the preference file at path and merges it over the defaults.
// A missing file is not an error; every key then carries its default.
func Load(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("settings.Load(%s) > %w", path, err)
		}
	}

	return &Store{path: path, viper: v}, nil
}

// GetString returns the value for key as a string.
func (s *Store) GetString(key string) string {
	return s.viper.GetString(key)
}

// GetInt returns the value for key as an int.
func (s *Store) GetInt(key string) int {
	return s.viper.GetInt(key)
}

// GetBool returns the value for key as a bool.
func (s *Store) GetBool(key string) bool {
	return s.viper.GetBool(key)
}

// Set overrides the value for key until the next Load.
func (s *Store) Set(key string, value any) {
	s.viper.Set(key, value)
}

// All returns the merged document: defaults overlaid with the file contents
// and any Set calls, including keys that are not in the defaults.
func (s *Store) All() map[string]any {
	return s.viper.AllSettings()
}

// Save writes the merged document back to the file, creating parent
// directories as needed.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.All(), "", "  ")
	if err != nil {
		return fmt.Errorf("settings.Save(%s) > %w", s.path, err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("settings.Save(%s) > %w", s.path, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("settings.Save(%s) > %w", s.path, err)
	}
	return nil
}
