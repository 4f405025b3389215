package logging

import (
	"context"

	"github.com/mdforge/mdforge/internal/ports"
)

// NopLogger discards every message. Stage and controller tests use it so
// assertions run against command and filesystem effects, not log noise.
type NopLogger struct {
	level ports.Level
}

// NewNopLogger creates a discarding logger.
func NewNopLogger() *NopLogger {
	return &NopLogger{level: ports.LevelInfo}
}

func (l *NopLogger) Debug(_ context.Context, _ string, _ ...ports.Field) {}

func (l *NopLogger) Info(_ context.Context, _ string, _ ...ports.Field) {}

func (l *NopLogger) Warn(_ context.Context, _ string, _ ...ports.Field) {}

func (l *NopLogger) Error(_ context.Context, _ string, _ ...ports.Field) {}

// With returns the same logger; there is nothing to scope fields onto.
func (l *NopLogger) With(_ ...ports.Field) ports.Logger {
	return l
}

// Level reports the configured level even though nothing is emitted, so the
// logger behaves consistently when swapped in for a real one.
func (l *NopLogger) Level() ports.Level {
	return l.level
}

// SetLevel records the level without enabling output.
func (l *NopLogger) SetLevel(level ports.Level) {
	l.level = level
}

var _ ports.Logger = (*NopLogger)(nil)
