// Package command provides command execution adapters.
package command

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/mdforge/mdforge/internal/ports"
)

// DefaultTimeout bounds commands whose caller passes no explicit timeout.
const DefaultTimeout = 5 * time.Minute

// ExecRunner executes actual host commands via os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes a command bounded by the given timeout and returns the result.
// A non-zero exit or timeout is reported in the result, not as an error; the
// returned error is non-nil only when the command could not be started.
func (r *ExecRunner) Run(ctx context.Context, timeout time.Duration, command string, args ...string) (ports.CommandResult, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, command, args...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	result := ports.CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.ExitCode = -1
		return result, nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		result.ExitCode = -1
		return result, err
	}

	return result, nil
}

// RunSafe executes a command and never fails: spawn errors, non-zero exits
// and timeouts all come back as a result with Success() == false.
func (r *ExecRunner) RunSafe(ctx context.Context, timeout time.Duration, command string, args ...string) ports.CommandResult {
	result, err := r.Run(ctx, timeout, command, args...)
	if err != nil {
		result.ExitCode = -1
	}
	return result
}

// Ensure ExecRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*ExecRunner)(nil)
