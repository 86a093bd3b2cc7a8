package cmd

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInteractiveFixture() *convertFixture {
	f := newConvertFixture()
	f.files.addVideo("movie", "movie/a.mp4", 1024*1024)
	f.files.addVideo("movie", "movie/b.webm", 2*1024*1024)
	return f
}

func runInteractiveFixture(f *convertFixture) error {
	return RunConvertWithDependencies(context.Background(), f.deps(), defaultOptions())
}

func TestInteractive_ConvertSelectedThenExit(t *testing.T) {
	f := newInteractiveFixture()
	f.prompter.inputs = []string{"2", "0"}

	err := runInteractiveFixture(f)
	require.NoError(t, err)

	require.Len(t, f.encoder.requests, 1)
	assert.Equal(t, "movie/b.webm", f.encoder.requests[0].SourcePath)

	output := f.out.String()
	assert.Contains(t, output, "[SUCCESS] starting interactive mode")
	assert.Contains(t, output, "=== converting b.webm ===")
	assert.Contains(t, output, "exiting.")
	assert.Equal(t, 2, strings.Count(output, "a.mp4"), "list should be shown before each prompt")
}

func TestInteractive_ConvertAll(t *testing.T) {
	f := newInteractiveFixture()
	f.prompter.inputs = []string{" ALL ", "quit"}

	err := runInteractiveFixture(f)
	require.NoError(t, err)

	require.Len(t, f.encoder.requests, 2)
	assert.Equal(t, "movie/a.mp4", f.encoder.requests[0].SourcePath)
	assert.Equal(t, "movie/b.webm", f.encoder.requests[1].SourcePath)
	assert.Contains(t, f.out.String(), "[SUCCESS] converted 2 of 2 files.")
}

func TestInteractive_InvalidInput(t *testing.T) {
	f := newInteractiveFixture()
	f.prompter.inputs = []string{"abc", "9", "-1", "exit"}

	err := runInteractiveFixture(f)
	require.NoError(t, err)

	output := f.out.String()
	assert.Contains(t, output, "[ERROR] please enter a valid number.")
	assert.Equal(t, 2, strings.Count(output, "[ERROR] invalid number."))
	assert.Empty(t, f.encoder.requests)
}

func TestInteractive_EndOfInputExitsCleanly(t *testing.T) {
	f := newInteractiveFixture()

	err := runInteractiveFixture(f)
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "exiting.")
}

func TestInteractive_InterruptExitsWithFailure(t *testing.T) {
	f := newInteractiveFixture()
	f.prompter.inputErr = terminal.InterruptErr

	err := runInteractiveFixture(f)
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, f.out.String(), "conversion interrupted.")
}

func TestInteractive_CancelStopsConvertAll(t *testing.T) {
	f := newInteractiveFixture()
	f.prompter.inputs = []string{"all", "0"}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.encoder.onEncode = cancel
	f.encoder.encodeErr = errors.New("signal: interrupt")

	err := RunConvertWithDependencies(ctx, f.deps(), defaultOptions())
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))

	assert.Len(t, f.encoder.requests, 1, "remaining files must not be converted after a cancel")
	output := f.out.String()
	assert.Contains(t, output, "conversion interrupted.")
	assert.NotContains(t, output, "of 2 files")
	assert.Len(t, f.prompter.inputs, 1, "no further prompt after a cancel")
}

func TestInteractive_CancelAfterSelectedFile(t *testing.T) {
	f := newInteractiveFixture()
	f.prompter.inputs = []string{"1", "0"}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.encoder.onEncode = cancel

	err := RunConvertWithDependencies(ctx, f.deps(), defaultOptions())
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, f.out.String(), "conversion interrupted.")
	assert.NotContains(t, f.out.String(), "exiting.")
}

func TestInteractive_MovieDirectoryMissing(t *testing.T) {
	f := newConvertFixture()

	err := runInteractiveFixture(f)
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, f.out.String(), "[ERROR] movie directory not found: movie")
	assert.Empty(t, f.prompter.messages)
}

func TestInteractive_NoVideos(t *testing.T) {
	f := newConvertFixture()
	f.files.dirs["movie"] = true

	err := runInteractiveFixture(f)
	require.NoError(t, err)

	output := f.out.String()
	assert.Contains(t, output, "[ERROR] no convertible video files in the movie directory.")
	assert.Contains(t, output, "Supported video formats:")
	assert.Contains(t, output, "Tip: put video files in the movie directory and run again.")
	assert.Empty(t, f.prompter.messages)
}
