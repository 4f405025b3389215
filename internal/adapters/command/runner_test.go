package command

import (
	"context"
	"testing"
	"time"
)

func TestNewExecRunner(t *testing.T) {
	runner := NewExecRunner()
	if runner == nil {
		t.Error("NewExecRunner() should not return nil")
	}
}

func TestExecRunner_Run_Success(t *testing.T) {
	runner := NewExecRunner()

	result, err := runner.Run(context.Background(), 0, "echo", "hello")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Success() {
		t.Error("Run() should succeed for 'echo hello'")
	}
	if result.Stdout != "hello\n" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "hello\n")
	}
	if result.Duration <= 0 {
		t.Error("Duration should be positive")
	}
}

func TestExecRunner_Run_Failure(t *testing.T) {
	runner := NewExecRunner()

	result, err := runner.Run(context.Background(), 0, "false")
	if err != nil {
		t.Fatalf("Run() error = %v (should return result with exit code, not error)", err)
	}
	if result.Success() {
		t.Error("Run() should fail for 'false' command")
	}
	if result.ExitCode == 0 {
		t.Error("ExitCode should be non-zero for 'false' command")
	}
}

func TestExecRunner_Run_NotFound(t *testing.T) {
	runner := NewExecRunner()

	_, err := runner.Run(context.Background(), 0, "nonexistent-command-12345")
	if err == nil {
		t.Error("Run() should return error for non-existent command")
	}
}

func TestExecRunner_Run_WithStderr(t *testing.T) {
	runner := NewExecRunner()

	result, err := runner.Run(context.Background(), 0, "sh", "-c", "echo error >&2; exit 1")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Success() {
		t.Error("Run() should fail")
	}
	if result.Stderr != "error\n" {
		t.Errorf("Stderr = %q, want %q", result.Stderr, "error\n")
	}
}

func TestExecRunner_Run_Timeout(t *testing.T) {
	runner := NewExecRunner()

	result, err := runner.Run(context.Background(), 100*time.Millisecond, "sleep", "10")
	if err != nil {
		t.Fatalf("Run() error = %v (timeout should be reported in result)", err)
	}
	if !result.TimedOut {
		t.Error("TimedOut should be true for a command exceeding its bound")
	}
	if result.Success() {
		t.Error("a timed-out command must not report success")
	}
}

func TestExecRunner_RunSafe_SpawnFailure(t *testing.T) {
	runner := NewExecRunner()

	result := runner.RunSafe(context.Background(), 0, "nonexistent-command-12345")
	if result.Success() {
		t.Error("RunSafe() should report failure for non-existent command")
	}
}

func TestExecRunner_RunSafe_Success(t *testing.T) {
	runner := NewExecRunner()

	result := runner.RunSafe(context.Background(), 0, "echo", "ok")
	if !result.Success() {
		t.Error("RunSafe() should succeed for 'echo ok'")
	}
	if result.Stdout != "ok\n" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "ok\n")
	}
}
