package provision

import (
	"context"
	"time"

	"github.com/felixgeelhaar/statekit"

	"github.com/mdforge/mdforge/internal/domain/config"
	"github.com/mdforge/mdforge/internal/ports"
)

// StepStore persists the stage ordinal between invocations. Reads are
// fail-open; a write failure is reported but does not undo the stage's
// already-applied effects.
type StepStore interface {
	Current() int
	Save(ordinal int) error
}

// Outcome classifies how an invocation ended.
type Outcome int

const (
	// OutcomeAdvanced means the stage succeeded and the checkpoint moved on.
	OutcomeAdvanced Outcome = iota
	// OutcomeRebootRequired means the stage succeeded and the host must
	// reboot before the next invocation can proceed.
	OutcomeRebootRequired
	// OutcomeDeclined means the operator declined a destructive stage; no
	// mutation happened and the checkpoint is unchanged.
	OutcomeDeclined
	// OutcomeComplete means every stage has already run.
	OutcomeComplete
	// OutcomeFailed means validation or a required command failed.
	OutcomeFailed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeAdvanced:
		return "advanced"
	case OutcomeRebootRequired:
		return "reboot-required"
	case OutcomeDeclined:
		return "declined"
	case OutcomeComplete:
		return "complete"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes one controller invocation.
type Result struct {
	Outcome Outcome
	Ordinal int
	Stage   string
}

// Invocation lifecycle events.
const (
	eventDispatch     = "DISPATCH"
	eventValidated    = "VALIDATED"
	eventInvalid      = "INVALID"
	eventApproved     = "APPROVED"
	eventDeclined     = "DECLINED"
	eventExecuted     = "EXECUTED"
	eventFailed       = "FAILED"
	eventCheckpointed = "CHECKPOINTED"
	eventReset        = "RESET"
)

// invocation is the statekit context for one controller run.
type invocation struct {
	Ordinal   int
	Stage     string
	StartedAt time.Time
}

// Controller is the state machine driving the provisioning sequence. Each
// Run executes exactly one stage: validation, optional confirmation, the
// stage's commands, then the checkpoint write. The checkpoint advances only
// after full stage success, so a failed invocation re-executes the same
// stage from the top next time.
type Controller struct {
	cfg       *config.Config
	seq       Sequence
	store     StepStore
	validator *DeviceValidator
	confirmer ports.Confirmer
	log       ports.Logger
}

// NewController creates a Controller.
func NewController(cfg *config.Config, seq Sequence, store StepStore, validator *DeviceValidator, confirmer ports.Confirmer, log ports.Logger) *Controller {
	return &Controller{
		cfg:       cfg,
		seq:       seq,
		store:     store,
		validator: validator,
		confirmer: confirmer,
		log:       log,
	}
}

// Run executes the next pending stage. Configuration consistency is checked
// once, before the first stage; on any failure the checkpoint is left
// untouched.
func (c *Controller) Run(ctx context.Context) (Result, error) {
	ordinal := c.store.Current()
	if ordinal > c.seq.Len() {
		c.log.Info(ctx, "provisioning already complete", ports.F("ordinal", ordinal))
		return Result{Outcome: OutcomeComplete, Ordinal: ordinal}, nil
	}

	// Later invocations trust the layout the earlier stages already applied;
	// re-validating here would wedge a resumed sequence after a config edit.
	if ordinal == 1 {
		if err := c.cfg.Validate(); err != nil {
			return Result{Outcome: OutcomeFailed, Ordinal: ordinal}, err
		}
	}

	stage, ok := c.seq.Stage(ordinal)
	if !ok {
		return Result{Outcome: OutcomeFailed, Ordinal: ordinal}, config.NewConfigInvalidError(
			"no stage defined for the persisted checkpoint",
			"the checkpoint file may belong to a different version",
		)
	}

	result := Result{Ordinal: ordinal, Stage: stage.Name}
	log := c.log.With(ports.F("stage", stage.Name), ports.F("ordinal", ordinal))

	interp := c.startLifecycle(ctx, stage)
	defer c.stopLifecycle(interp)

	c.transition(ctx, interp, eventDispatch)
	log.Info(ctx, "stage starting", ports.F("summary", stage.Summary))

	// Device visibility can change across reboots; re-check it before
	// anything irreversible.
	if stage.Destructive {
		if err := c.validator.Validate(ctx, c.cfg.Devices); err != nil {
			c.transition(ctx, interp, eventInvalid)
			result.Outcome = OutcomeFailed
			return result, err
		}
	}
	c.transition(ctx, interp, eventValidated)

	if stage.Destructive {
		approved, err := c.confirmer.Confirm(ctx, stage.ConfirmPrompt)
		if err != nil {
			c.transition(ctx, interp, eventDeclined)
			result.Outcome = OutcomeFailed
			return result, err
		}
		if !approved {
			c.transition(ctx, interp, eventDeclined)
			log.Info(ctx, "operator declined, nothing was changed")
			result.Outcome = OutcomeDeclined
			return result, nil
		}
	}
	c.transition(ctx, interp, eventApproved)

	if err := stage.Run(ctx); err != nil {
		c.transition(ctx, interp, eventFailed)
		log.Error(ctx, "stage failed, checkpoint not advanced", ports.F("error", err))
		result.Outcome = OutcomeFailed
		return result, err
	}
	c.transition(ctx, interp, eventExecuted)

	// The stage's effects are applied; a checkpoint write failure must not
	// fail the invocation, only warn that the next run repeats this stage.
	next := ordinal + 1
	if err := c.store.Save(next); err != nil {
		log.Error(ctx, "checkpoint write failed, next invocation will repeat this stage",
			ports.F("next", next), ports.F("error", err))
	}
	c.transition(ctx, interp, eventCheckpointed)

	if stage.RebootTerminal {
		log.Info(ctx, "stage complete, reboot required to continue")
		result.Outcome = OutcomeRebootRequired
		return result, nil
	}

	log.Info(ctx, "stage complete", ports.F("next", next))
	result.Outcome = OutcomeAdvanced
	return result, nil
}

// buildLifecycleMachine constructs the per-invocation state machine. It
// tracks where an invocation is so transitions show up in debug logs; the
// controller's control flow stays imperative.
func buildLifecycleMachine(inv invocation) (*statekit.Interpreter[invocation], error) {
	machine, err := statekit.NewMachine[invocation]("mdforge-invocation").
		WithInitial("idle").
		WithContext(inv).
		State("idle").
		On(eventDispatch).Target("validating").Done().
		State("validating").
		On(eventValidated).Target("gating").
		On(eventInvalid).Target("failed").Done().
		State("gating").
		On(eventApproved).Target("executing").
		On(eventDeclined).Target("declined").Done().
		State("executing").
		On(eventExecuted).Target("checkpointing").
		On(eventFailed).Target("failed").Done().
		State("checkpointing").
		On(eventCheckpointed).Target("settled").Done().
		State("settled").
		On(eventReset).Target("idle").Done().
		State("declined").
		On(eventReset).Target("idle").Done().
		State("failed").
		On(eventReset).Target("idle").Done().
		Build()
	if err != nil {
		return nil, err
	}

	return statekit.NewInterpreter(machine), nil
}

func (c *Controller) startLifecycle(ctx context.Context, stage Stage) *statekit.Interpreter[invocation] {
	interp, err := buildLifecycleMachine(invocation{
		Ordinal:   stage.Ordinal,
		Stage:     stage.Name,
		StartedAt: time.Now(),
	})
	if err != nil {
		// The machine is observability only; a build error must never block
		// provisioning.
		c.log.Warn(ctx, "invocation lifecycle tracking unavailable", ports.F("error", err))
		return nil
	}

	interp.Start()
	return interp
}

func (c *Controller) stopLifecycle(interp *statekit.Interpreter[invocation]) {
	if interp != nil {
		interp.Stop()
	}
}

func (c *Controller) transition(ctx context.Context, interp *statekit.Interpreter[invocation], event string) {
	if interp == nil {
		return
	}
	interp.Send(statekit.Event{Type: statekit.EventType(event)})
	c.log.Debug(ctx, "lifecycle transition",
		ports.F("event", event), ports.F("state", interp.State().Value))
}
