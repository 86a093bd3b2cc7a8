package ffmpeg

import (
	"context"
)

// mockRunner records invocations and returns a canned result
type mockRunner struct {
	calls  [][]string
	result *CommandResult
	err    error
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) (*CommandResult, error) {
	m.calls = append(m.calls, append([]string{name}, args...))
	if m.result == nil {
		return &CommandResult{}, m.err
	}
	return m.result, m.err
}
