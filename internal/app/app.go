// Package app wires configuration, adapters, and the provisioning domain
// into the operations the CLI exposes.
package app

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/mdforge/mdforge/internal/adapters/checkpoint"
	"github.com/mdforge/mdforge/internal/adapters/command"
	"github.com/mdforge/mdforge/internal/adapters/filesystem"
	"github.com/mdforge/mdforge/internal/adapters/logging"
	"github.com/mdforge/mdforge/internal/adapters/prompt"
	"github.com/mdforge/mdforge/internal/domain/config"
	"github.com/mdforge/mdforge/internal/domain/provision"
	"github.com/mdforge/mdforge/internal/ports"
	"github.com/mdforge/mdforge/internal/report"
)

// Options controls how the application is assembled.
type Options struct {
	// ConfigPath is the path to the YAML or TOML configuration file.
	ConfigPath string

	// Yes auto-approves destructive stage confirmations.
	Yes bool

	// Verbose lowers the log threshold to debug.
	Verbose bool

	// JSONLogs switches log output to one JSON object per line.
	JSONLogs bool

	// In and Out default to os.Stdin and os.Stdout.
	In  io.Reader
	Out io.Writer
}

// App is the assembled application.
type App struct {
	cfg       *config.Config
	log       ports.Logger
	runner    ports.CommandRunner
	fs        ports.FileSystem
	store     *checkpoint.FileStore
	confirmer ports.Confirmer
	out       io.Writer
}

// New loads the configuration and assembles the real adapters.
func New(opts Options) (*App, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	logOpts := []logging.Option{logging.WithJSONFormat(opts.JSONLogs)}
	if opts.Verbose {
		logOpts = append(logOpts, logging.WithLevel(ports.LevelDebug))
	}
	log := logging.NewConsoleLogger(logOpts...).With(ports.F("run_id", uuid.NewString()))

	cfg, err := config.NewLoader().Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	var confirmer ports.Confirmer
	if opts.Yes {
		confirmer = prompt.NewAutoApprove()
	} else {
		confirmer = prompt.NewTerminal(opts.In, opts.Out)
	}

	return &App{
		cfg:       cfg,
		log:       log,
		runner:    command.NewExecRunner(),
		fs:        filesystem.NewOSFileSystem(),
		store:     checkpoint.NewFileStore(cfg.CheckpointPath),
		confirmer: confirmer,
		out:       opts.Out,
	}, nil
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Checkpoint returns the persisted stage ordinal.
func (a *App) Checkpoint() int {
	return a.store.Current()
}

// Sequence builds the stage sequence for the loaded configuration. Host
// facts that only matter at execution time are left unresolved.
func (a *App) Sequence(ctx context.Context) provision.Sequence {
	tb := a.toolbox()
	host := provision.ResolveHost(ctx, a.runner, a.cfg)
	return provision.BuildSequence(a.cfg, host, tb, provision.NewDeviceValidator(tb))
}

// Setup runs the next pending provisioning stage and returns its result.
func (a *App) Setup(ctx context.Context) (provision.Result, error) {
	tb := a.toolbox()
	host := provision.ResolveHost(ctx, a.runner, a.cfg)
	validator := provision.NewDeviceValidator(tb)
	seq := provision.BuildSequence(a.cfg, host, tb, validator)

	controller := provision.NewController(a.cfg, seq, a.store, validator, a.confirmer, a.log)
	return controller.Run(ctx)
}

// Status collects a point-in-time health report.
func (a *App) Status(ctx context.Context) report.Report {
	return a.collector(ctx).Collect(ctx)
}

// Serve runs the status dashboard until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	server := report.NewServer(a.collector(ctx), a.cfg.DashboardPort, a.log)
	return server.ListenAndServe(ctx)
}

// Reboot asks the host to reboot. It does not return on success.
func (a *App) Reboot(ctx context.Context) error {
	_, err := a.runner.Run(ctx, command.DefaultTimeout, "reboot")
	return err
}

func (a *App) toolbox() provision.Toolbox {
	return provision.Toolbox{Runner: a.runner, FS: a.fs, Log: a.log}
}

func (a *App) collector(ctx context.Context) *report.Collector {
	host := provision.ResolveHost(ctx, a.runner, a.cfg)
	return report.NewCollector(a.runner, a.fs, a.cfg, host)
}
