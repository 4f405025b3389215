package provision

import (
	"context"
	"strings"
	"time"

	"github.com/mdforge/mdforge/internal/domain/config"
	"github.com/mdforge/mdforge/internal/ports"
)

// Command timeouts. Package installs and array operations can legitimately
// take minutes; informational queries must give up quickly.
const (
	requiredTimeout  = 5 * time.Minute
	quickTimeout     = time.Minute
	freshclamTimeout = 10 * time.Minute
)

// runRequired executes a command the stage cannot succeed without. A spawn
// failure, non-zero exit or timeout produces an error after dumping the
// captured output for operator diagnosis; the caller aborts the stage.
func runRequired(ctx context.Context, tb Toolbox, timeout time.Duration, command string, args ...string) (ports.CommandResult, error) {
	line := commandLine(command, args)
	tb.Log.Info(ctx, "exec", ports.F("command", line))

	result, err := tb.Runner.Run(ctx, timeout, command, args...)
	if err != nil {
		tb.Log.Error(ctx, "command could not be started", ports.F("command", line), ports.F("error", err))
		return result, &config.UserError{
			Code:       config.ErrCodeCommandFailed,
			Message:    "command could not be started: " + line,
			Context:    line,
			Underlying: err,
		}
	}

	if result.TimedOut {
		dumpOutput(ctx, tb, line, result)
		return result, config.NewCommandTimeoutError(line, timeout.Seconds())
	}

	if !result.Success() {
		dumpOutput(ctx, tb, line, result)
		return result, config.NewCommandFailedError(line, result.ExitCode, result.Stderr)
	}

	tb.Log.Debug(ctx, "exec ok", ports.F("command", line), ports.F("duration", result.Duration))
	return result, nil
}

// dumpOutput surfaces everything a failed required command captured.
func dumpOutput(ctx context.Context, tb Toolbox, line string, result ports.CommandResult) {
	fields := []ports.Field{
		ports.F("command", line),
		ports.F("exit_code", result.ExitCode),
		ports.F("timed_out", result.TimedOut),
	}
	if out := strings.TrimSpace(result.Stdout); out != "" {
		fields = append(fields, ports.F("stdout", out))
	}
	if errOut := strings.TrimSpace(result.Stderr); errOut != "" {
		fields = append(fields, ports.F("stderr", errOut))
	}
	tb.Log.Error(ctx, "required command failed", fields...)
}

// volumeUUID asks blkid for the device's filesystem UUID. Best-effort: an
// empty string means the caller falls back to the device node.
func volumeUUID(ctx context.Context, tb Toolbox, device string) string {
	result := tb.Runner.RunSafe(ctx, quickTimeout, "blkid", "-s", "UUID", "-o", "value", device)
	if !result.Success() {
		return ""
	}
	return strings.TrimSpace(result.Stdout)
}

func commandLine(command string, args []string) string {
	return strings.Join(append([]string{command}, args...), " ")
}
