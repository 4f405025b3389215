// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"time"
)

// CommandResult represents the captured outcome of an external command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	TimedOut bool
}

// Success returns true if the command ran to completion and exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0 && !r.TimedOut
}

// CommandRunner executes external commands.
//
// Run is the fail-fast mode: it returns an error only when the command could
// not be spawned; a non-zero exit or timeout is reported through the result so
// the caller can decide how fatal it is. RunSafe is the fail-soft mode: it
// never returns an error, and any failure (spawn, exit, timeout) yields a
// result whose Success() is false with whatever output was captured.
type CommandRunner interface {
	Run(ctx context.Context, timeout time.Duration, command string, args ...string) (CommandResult, error)
	RunSafe(ctx context.Context, timeout time.Duration, command string, args ...string) CommandResult
}
