// Package mocks provides test doubles for testing.
package mocks

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/mdforge/mdforge/internal/ports"
)

// Call records a command invocation.
type Call struct {
	Command string
	Args    []string
	Safe    bool
}

// String returns the invocation as a shell-like line.
func (c Call) String() string {
	return strings.Join(append([]string{c.Command}, c.Args...), " ")
}

// CommandRunner is a thread-safe test double for ports.CommandRunner.
// Unregistered commands succeed with empty output so stage tests only script
// the invocations they care about.
type CommandRunner struct {
	mu      sync.RWMutex
	results map[string]ports.CommandResult
	errors  map[string]error
	calls   []Call
}

// NewCommandRunner creates a new CommandRunner mock.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{
		results: make(map[string]ports.CommandResult),
		errors:  make(map[string]error),
	}
}

// Script registers a result for an exact command line.
func (m *CommandRunner) Script(result ports.CommandResult, command string, args ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[buildKey(command, args)] = result
}

// ScriptError registers a spawn error for an exact command line.
func (m *CommandRunner) ScriptError(err error, command string, args ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[buildKey(command, args)] = err
}

// Run executes a scripted command.
func (m *CommandRunner) Run(_ context.Context, _ time.Duration, command string, args ...string) (ports.CommandResult, error) {
	m.record(Call{Command: command, Args: args})

	m.mu.RLock()
	defer m.mu.RUnlock()

	key := buildKey(command, args)
	if err, ok := m.errors[key]; ok {
		return ports.CommandResult{ExitCode: -1}, err
	}
	if result, ok := m.results[key]; ok {
		return result, nil
	}
	return ports.CommandResult{}, nil
}

// RunSafe executes a scripted command, mapping errors to a failed result.
func (m *CommandRunner) RunSafe(_ context.Context, _ time.Duration, command string, args ...string) ports.CommandResult {
	m.record(Call{Command: command, Args: args, Safe: true})

	m.mu.RLock()
	defer m.mu.RUnlock()

	key := buildKey(command, args)
	if _, ok := m.errors[key]; ok {
		return ports.CommandResult{ExitCode: -1}
	}
	if result, ok := m.results[key]; ok {
		return result
	}
	return ports.CommandResult{}
}

// Calls returns all recorded command invocations.
func (m *CommandRunner) Calls() []Call {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]Call, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallLines returns every recorded invocation as a shell-like line.
func (m *CommandRunner) CallLines() []string {
	calls := m.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}

// Ran reports whether a command whose line starts with prefix was invoked.
func (m *CommandRunner) Ran(prefix string) bool {
	for _, line := range m.CallLines() {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func (m *CommandRunner) record(call Call) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func buildKey(command string, args []string) string {
	return strings.Join(append([]string{command}, args...), " ")
}

// Ensure CommandRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*CommandRunner)(nil)
