// Package provision implements the checkpointed, reboot-resumable stage
// sequence that turns raw block devices into a mounted, shared, protected
// volume. Exactly one stage executes per invocation; the persisted ordinal is
// the only state carried across invocations and reboots.
package provision

import (
	"context"

	"github.com/mdforge/mdforge/internal/ports"
)

// Toolbox bundles the host-facing capabilities stage actions run with.
type Toolbox struct {
	Runner ports.CommandRunner
	FS     ports.FileSystem
	Log    ports.Logger
}

// Stage is one discrete, checkpointed unit of provisioning work. Stages are
// immutable once the sequence is built, and their actions must tolerate
// re-execution after a failed or interrupted earlier attempt.
type Stage struct {
	// Ordinal is the stage's position in the sequence, starting at 1.
	Ordinal int

	// Name is a short machine-friendly identifier.
	Name string

	// Summary describes the stage for plans and logs.
	Summary string

	// Destructive marks stages that irreversibly mutate devices; they are
	// gated behind operator confirmation before their first command.
	Destructive bool

	// ConfirmPrompt states the exact irreversible consequence shown to the
	// operator of a destructive stage.
	ConfirmPrompt string

	// RebootTerminal marks stages after which the process must halt and
	// rely on an external re-invocation once the host has rebooted.
	RebootTerminal bool

	// Run performs the stage's work.
	Run func(ctx context.Context) error
}

// Sequence is the ordered, immutable set of stages.
type Sequence struct {
	stages []Stage
}

// NewSequence builds a sequence from stages ordered by ordinal.
func NewSequence(stages ...Stage) Sequence {
	return Sequence{stages: stages}
}

// Len returns the number of stages.
func (s Sequence) Len() int {
	return len(s.stages)
}

// Stage returns the stage with the given ordinal.
func (s Sequence) Stage(ordinal int) (Stage, bool) {
	for _, stage := range s.stages {
		if stage.Ordinal == ordinal {
			return stage, true
		}
	}
	return Stage{}, false
}

// Stages returns all stages in order.
func (s Sequence) Stages() []Stage {
	out := make([]Stage, len(s.stages))
	copy(out, s.stages)
	return out
}
