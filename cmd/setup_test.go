package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mp4tomp3/infrastructure/config"
)

func TestRunSetup_WritesConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config", "config.yaml")
	prompter := &mockPrompter{
		inputs:  []string{"videos", "audio", "/opt/bin/ffmpeg", "/opt/bin/ffprobe"},
		selects: []string{"320k"},
	}
	out := &bytes.Buffer{}

	err := RunSetupWithPrompter(prompter, configPath, out)
	require.NoError(t, err)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "videos", cfg.Paths.MovieDirectory)
	assert.Equal(t, "audio", cfg.Paths.OutputDirectory)
	assert.Equal(t, "320k", cfg.Audio.Bitrate)
	assert.Equal(t, "/opt/bin/ffmpeg", cfg.Tools.FFmpeg)
	assert.Equal(t, "/opt/bin/ffprobe", cfg.Tools.FFprobe)
	assert.Contains(t, out.String(), "Configuration saved to "+configPath)
}

func TestRunSetup_EmptyAnswersKeepDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	prompter := &mockPrompter{inputs: []string{"", "", "", ""}}

	err := RunSetupWithPrompter(prompter, configPath, &bytes.Buffer{})
	require.NoError(t, err)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestRunSetup_DeclineOverwrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	original := "paths:\n  movie_directory: keep\n"
	require.NoError(t, os.WriteFile(configPath, []byte(original), 0644))

	prompter := &mockPrompter{confirms: []bool{false}}
	out := &bytes.Buffer{}

	err := RunSetupWithPrompter(prompter, configPath, out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Setup cancelled.")

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestRunSetup_AcceptOverwrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("audio:\n  bitrate: 128k\n"), 0644))

	prompter := &mockPrompter{
		confirms: []bool{true},
		inputs:   []string{"movie", "mp3", "ffmpeg", "ffprobe"},
		selects:  []string{"256k"},
	}

	err := RunSetupWithPrompter(prompter, configPath, &bytes.Buffer{})
	require.NoError(t, err)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "256k", cfg.Audio.Bitrate)
}

func TestRunSetup_PromptCancelled(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	prompter := &mockPrompter{}

	err := RunSetupWithPrompter(prompter, configPath, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt cancelled")

	_, statErr := os.Stat(configPath)
	assert.True(t, os.IsNotExist(statErr))
}
