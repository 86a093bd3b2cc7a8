package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"mp4tomp3/domain/media"
)

// ErrUnknownKey is returned when a setting key does not exist
var ErrUnknownKey = errors.New("unknown config key")

// Setting is a single key/value pair of the configuration
type Setting struct {
	Key   string
	Value string
}

// ConfigManager provides read and update operations on config settings
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a new config manager
func NewConfigManager(cfg *Config, configPath string) *ConfigManager {
	return &ConfigManager{
		config:     cfg,
		configPath: configPath,
	}
}

func (m *ConfigManager) fields() map[string]*string {
	return map[string]*string{
		"paths.movie_directory":  &m.config.Paths.MovieDirectory,
		"paths.output_directory": &m.config.Paths.OutputDirectory,
		"audio.bitrate":          &m.config.Audio.Bitrate,
		"tools.ffmpeg":           &m.config.Tools.FFmpeg,
		"tools.ffprobe":          &m.config.Tools.FFprobe,
	}
}

// Keys returns every settable key in sorted order
func (m *ConfigManager) Keys() []string {
	keys := make([]string, 0, len(m.fields()))
	for key := range m.fields() {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// List returns all settings sorted by key
func (m *ConfigManager) List() []Setting {
	fields := m.fields()
	settings := make([]Setting, 0, len(fields))
	for _, key := range m.Keys() {
		settings = append(settings, Setting{Key: key, Value: *fields[key]})
	}
	return settings
}

// Get returns the value of a setting
func (m *ConfigManager) Get(key string) (string, error) {
	field, ok := m.fields()[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return *field, nil
}

// Set validates and updates a setting, then saves the config file
func (m *ConfigManager) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	field, ok := m.fields()[key]
	if !ok {
		return fmt.Errorf("%w: %s. valid keys: %s", ErrUnknownKey, key, strings.Join(m.Keys(), ", "))
	}
	if value == "" {
		return fmt.Errorf("value for %s is required", key)
	}
	if key == "audio.bitrate" {
		if err := media.ValidateBitrate(value); err != nil {
			return err
		}
	}

	*field = value
	return m.save()
}

func (m *ConfigManager) save() error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return Save(m.config, m.configPath)
}
