package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdforge/mdforge/internal/app"
	"github.com/mdforge/mdforge/internal/domain/config"
)

var (
	// Global flags
	cfgFile  string
	verbose  bool
	jsonLogs bool
	yesFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "mdforge",
	Short: "Turn raw disks into a shared, protected RAID volume",
	Long: `mdforge provisions an md-RAID array, filesystem, Samba share, and
firewall on a Linux host through a sequence of checkpointed stages.

Each 'setup' invocation runs exactly one stage and records its progress,
so the process survives the reboot the first stage requires and resumes
where it left off. Destructive stages ask for confirmation before
touching any disk.`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "mdforge.yaml", "config file (YAML or TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit logs as JSON")
	rootCmd.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "auto-confirm destructive stages")

	rootCmd.AddCommand(versionCmd)
}

// newApp assembles the application from the global flags.
var newApp = func(out io.Writer) (*app.App, error) {
	return app.New(app.Options{
		ConfigPath: cfgFile,
		Yes:        yesFlag,
		Verbose:    verbose,
		JSONLogs:   jsonLogs,
		In:         os.Stdin,
		Out:        out,
	})
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var userErr *config.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (%s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}
