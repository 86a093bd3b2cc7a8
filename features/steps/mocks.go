//go:build integration

package steps

import (
	"context"
	"io"
	"os"
	"time"

	"mp4tomp3/domain/media"
)

// mockEncoder records conversion requests instead of running ffmpeg
type mockEncoder struct {
	notInstalled bool
	failWith     error
	requests     []*media.ConversionRequest
}

func (m *mockEncoder) RequireInstalled(ctx context.Context) error {
	if m.notInstalled {
		return media.NewError(media.KindEncoderNotFound, "FFmpeg is not installed", "")
	}
	return nil
}

func (m *mockEncoder) Encode(ctx context.Context, req *media.ConversionRequest) error {
	m.requests = append(m.requests, req)
	return m.failWith
}

// mockProber returns a fixed probe result
type mockProber struct {
	result *media.ProbeResult
	err    error
}

func (m *mockProber) Probe(ctx context.Context, path string) (*media.ProbeResult, error) {
	return m.result, m.err
}

type fileInfo struct {
	name string
	size int64
}

func (f fileInfo) Name() string       { return f.name }
func (f fileInfo) Size() int64        { return f.size }
func (f fileInfo) Mode() os.FileMode  { return 0644 }
func (f fileInfo) ModTime() time.Time { return time.Time{} }
func (f fileInfo) IsDir() bool        { return false }
func (f fileInfo) Sys() any           { return nil }

// mockFileSystem keeps files and directories in memory
type mockFileSystem struct {
	sizes     map[string]int64
	dirs      map[string]bool
	listings  map[string][]string
	freeSpace error
}

func newMockFileSystem() *mockFileSystem {
	return &mockFileSystem{
		sizes:    make(map[string]int64),
		dirs:     make(map[string]bool),
		listings: make(map[string][]string),
	}
}

func (m *mockFileSystem) Exists(path string) bool {
	if m.dirs[path] {
		return true
	}
	_, ok := m.sizes[path]
	return ok
}

func (m *mockFileSystem) Stat(path string) (os.FileInfo, error) {
	size, ok := m.sizes[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return fileInfo{name: path, size: size}, nil
}

func (m *mockFileSystem) EnsureDirectory(dir string) error {
	m.dirs[dir] = true
	return nil
}

func (m *mockFileSystem) CheckFreeSpace(target string, requiredMB int64) error {
	return m.freeSpace
}

func (m *mockFileSystem) ListVideoFiles(dir string) []string {
	return append([]string{}, m.listings[dir]...)
}

// MockPrompter implements cmd.Prompter with queued answers
type MockPrompter struct {
	inputResponses   []string
	confirmResponses []bool
	selectResponses  []string
}

func (m *MockPrompter) Input(message string, defaultValue string) (string, error) {
	if len(m.inputResponses) == 0 {
		return "", io.EOF
	}
	response := m.inputResponses[0]
	m.inputResponses = m.inputResponses[1:]
	return response, nil
}

func (m *MockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if len(m.confirmResponses) == 0 {
		return defaultValue, nil
	}
	response := m.confirmResponses[0]
	m.confirmResponses = m.confirmResponses[1:]
	return response, nil
}

func (m *MockPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	if len(m.selectResponses) == 0 {
		return defaultValue, nil
	}
	response := m.selectResponses[0]
	m.selectResponses = m.selectResponses[1:]
	return response, nil
}
