package ffmpeg

import (
	"bytes"
	"context"
	"os/exec"
)

// CommandResult holds the captured output streams of a finished command
type CommandResult struct {
	Stdout []byte
	Stderr []byte
}

// CommandRunner defines the interface for running external commands
// This allows mocking exec.Command in tests
type CommandRunner interface {
	// Run executes the command, capturing stdout and stderr.
	// The result is returned even when err is non-nil.
	Run(ctx context.Context, name string, args ...string) (*CommandResult, error)
}

// ExecCommandRunner is the production implementation using os/exec
type ExecCommandRunner struct{}

// Run executes a command with both output streams captured; nothing reaches the terminal
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) (*CommandResult, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	return &CommandResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}, err
}

// Ensure ExecCommandRunner implements CommandRunner
var _ CommandRunner = (*ExecCommandRunner)(nil)
