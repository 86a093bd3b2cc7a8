package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"mp4tomp3/domain/media"
)

// DefaultPath is where the configuration file is looked up when --config is not given
const DefaultPath = "config/config.yaml"

// Environment variables that override values from the configuration file
const (
	EnvMovieDirectory  = "MP4TOMP3_MOVIE_DIR"
	EnvOutputDirectory = "MP4TOMP3_OUTPUT_DIR"
	EnvBitrate         = "MP4TOMP3_BITRATE"
	EnvFFmpeg          = "MP4TOMP3_FFMPEG"
	EnvFFprobe         = "MP4TOMP3_FFPROBE"
)

// Config represents the complete application configuration
type Config struct {
	Paths PathsConfig `yaml:"paths"`
	Audio AudioConfig `yaml:"audio"`
	Tools ToolsConfig `yaml:"tools"`
}

// PathsConfig contains directory paths for media processing
type PathsConfig struct {
	MovieDirectory  string `yaml:"movie_directory"`
	OutputDirectory string `yaml:"output_directory"`
}

// AudioConfig contains MP3 encoding settings
type AudioConfig struct {
	Bitrate string `yaml:"bitrate"`
}

// ToolsConfig contains paths to the external executables
type ToolsConfig struct {
	FFmpeg  string `yaml:"ffmpeg"`
	FFprobe string `yaml:"ffprobe"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			MovieDirectory:  "movie",
			OutputDirectory: "mp3",
		},
		Audio: AudioConfig{
			Bitrate: media.DefaultBitrate,
		},
		Tools: ToolsConfig{
			FFmpeg:  "ffmpeg",
			FFprobe: "ffprobe",
		},
	}
}

// Load reads and parses the configuration from the specified YAML file.
// Fields missing from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.fillDefaults()
	return cfg, nil
}

// LoadOrDefault loads path, falling back to the defaults when the file does not exist.
// Any other read or parse failure is returned.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadDotEnv loads variables from a .env file into the process environment.
// A missing file is not an error; variables already set are left untouched.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides configuration values with any MP4TOMP3_* variables that are set
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	overrides := map[string]*string{
		EnvMovieDirectory:  &c.Paths.MovieDirectory,
		EnvOutputDirectory: &c.Paths.OutputDirectory,
		EnvBitrate:         &c.Audio.Bitrate,
		EnvFFmpeg:          &c.Tools.FFmpeg,
		EnvFFprobe:         &c.Tools.FFprobe,
	}
	for name, field := range overrides {
		if value, ok := lookup(name); ok && value != "" {
			*field = value
		}
	}
}

// fillDefaults restores defaults for values the file set to empty strings
func (c *Config) fillDefaults() {
	def := Default()
	if c.Paths.MovieDirectory == "" {
		c.Paths.MovieDirectory = def.Paths.MovieDirectory
	}
	if c.Paths.OutputDirectory == "" {
		c.Paths.OutputDirectory = def.Paths.OutputDirectory
	}
	if c.Audio.Bitrate == "" {
		c.Audio.Bitrate = def.Audio.Bitrate
	}
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = def.Tools.FFmpeg
	}
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = def.Tools.FFprobe
	}
}
