package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"time"

	"mp4tomp3/domain/media"
	"mp4tomp3/infrastructure/console"
)

// mockEncoder implements media.Encoder for testing
type mockEncoder struct {
	notInstalled bool
	encodeErr    error
	requests     []*media.ConversionRequest
	onEncode     func()
}

func (m *mockEncoder) RequireInstalled(ctx context.Context) error {
	if m.notInstalled {
		return media.NewError(media.KindEncoderNotFound, "FFmpeg is not installed", "")
	}
	return nil
}

func (m *mockEncoder) Encode(ctx context.Context, req *media.ConversionRequest) error {
	m.requests = append(m.requests, req)
	if m.onEncode != nil {
		m.onEncode()
	}
	return m.encodeErr
}

// mockProber implements media.Prober for testing
type mockProber struct {
	result *media.ProbeResult
	err    error
}

func (m *mockProber) Probe(ctx context.Context, path string) (*media.ProbeResult, error) {
	if m.result == nil && m.err == nil {
		return nil, errors.New("no probe result configured")
	}
	return m.result, m.err
}

type fakeFileInfo struct {
	name string
	size int64
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return f.size }
func (f fakeFileInfo) Mode() os.FileMode  { return 0644 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() any           { return nil }

// mockFiles implements VideoFileSystem over in-memory paths
type mockFiles struct {
	sizes    map[string]int64
	dirs     map[string]bool
	videos   map[string][]string
	ensured  []string
	spaceErr error
}

func newMockFiles() *mockFiles {
	return &mockFiles{
		sizes:  make(map[string]int64),
		dirs:   make(map[string]bool),
		videos: make(map[string][]string),
	}
}

// addVideo registers path as an existing file listed under dir
func (m *mockFiles) addVideo(dir, path string, size int64) {
	m.dirs[dir] = true
	m.sizes[path] = size
	m.videos[dir] = append(m.videos[dir], path)
}

func (m *mockFiles) Exists(path string) bool {
	if m.dirs[path] {
		return true
	}
	_, ok := m.sizes[path]
	return ok
}

func (m *mockFiles) Stat(path string) (os.FileInfo, error) {
	size, ok := m.sizes[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return fakeFileInfo{name: path, size: size}, nil
}

func (m *mockFiles) EnsureDirectory(dir string) error {
	m.ensured = append(m.ensured, dir)
	return nil
}

func (m *mockFiles) CheckFreeSpace(target string, requiredMB int64) error {
	return m.spaceErr
}

func (m *mockFiles) ListVideoFiles(dir string) []string {
	return append([]string{}, m.videos[dir]...)
}

// mockPrompter replays canned answers. Input returns io.EOF once answers run out.
type mockPrompter struct {
	inputs   []string
	inputErr error
	confirms []bool
	selects  []string
	messages []string
}

func (m *mockPrompter) Input(message string, defaultValue string) (string, error) {
	m.messages = append(m.messages, message)
	if len(m.inputs) == 0 {
		if m.inputErr != nil {
			return "", m.inputErr
		}
		return "", io.EOF
	}
	answer := m.inputs[0]
	m.inputs = m.inputs[1:]
	return answer, nil
}

func (m *mockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	m.messages = append(m.messages, message)
	if len(m.confirms) == 0 {
		return defaultValue, nil
	}
	answer := m.confirms[0]
	m.confirms = m.confirms[1:]
	return answer, nil
}

func (m *mockPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	m.messages = append(m.messages, message)
	if len(m.selects) == 0 {
		return defaultValue, nil
	}
	answer := m.selects[0]
	m.selects = m.selects[1:]
	return answer, nil
}

// convertFixture wires mocks into ConvertDependencies and captures output
type convertFixture struct {
	encoder  *mockEncoder
	prober   *mockProber
	files    *mockFiles
	prompter *mockPrompter
	out      *bytes.Buffer
}

func newConvertFixture() *convertFixture {
	return &convertFixture{
		encoder:  &mockEncoder{},
		prober:   &mockProber{},
		files:    newMockFiles(),
		prompter: &mockPrompter{},
		out:      &bytes.Buffer{},
	}
}

func (f *convertFixture) deps() ConvertDependencies {
	return ConvertDependencies{
		Encoder:  f.encoder,
		Prober:   f.prober,
		Files:    f.files,
		Prompter: f.prompter,
		Output:   console.NewPlainPrinter(f.out),
	}
}

func defaultOptions() ConvertOptions {
	return ConvertOptions{
		Bitrate:   media.DefaultBitrate,
		OutputDir: "mp3",
		MovieDir:  "movie",
	}
}
