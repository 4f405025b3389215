package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdforge/mdforge/internal/domain/provision"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run the next provisioning stage",
	Long: `Setup runs the next pending stage of the provisioning sequence and
records a checkpoint on success.

The first stage ends in a reboot; run 'mdforge setup' again after the
host comes back up to continue. Keep re-running it until the sequence
reports completion. A failed stage leaves the checkpoint untouched and
re-runs from its first command on the next invocation.`,
	RunE: runSetup,
}

var setupNoReboot bool

// geteuid is swapped in tests.
var geteuid = os.Geteuid

func init() {
	rootCmd.AddCommand(setupCmd)

	setupCmd.Flags().BoolVar(&setupNoReboot, "no-reboot", false, "print the reboot notice instead of rebooting")
}

func runSetup(cmd *cobra.Command, _ []string) error {
	if geteuid() != 0 {
		return fmt.Errorf("setup must run as root; re-run with sudo")
	}

	a, err := newApp(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	result, err := a.Setup(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch result.Outcome {
	case provision.OutcomeDeclined:
		fmt.Fprintln(out, "Aborted. No changes were made.")
	case provision.OutcomeComplete:
		fmt.Fprintln(out, "Provisioning is already complete. Run 'mdforge status' to inspect the array.")
	case provision.OutcomeRebootRequired:
		fmt.Fprintf(out, "Stage %d (%s) finished.\n", result.Ordinal, result.Stage)
		fmt.Fprintln(out, "A reboot is required before the next stage. Run 'mdforge setup' again after the host is back up.")
		if setupNoReboot {
			fmt.Fprintln(out, "Skipping reboot (--no-reboot). Reboot manually to continue.")
			return nil
		}
		fmt.Fprintln(out, "Rebooting now...")
		return a.Reboot(cmd.Context())
	case provision.OutcomeAdvanced:
		fmt.Fprintf(out, "Stage %d (%s) finished.\n", result.Ordinal, result.Stage)
		fmt.Fprintln(out, "Run 'mdforge setup' again to continue with the next stage.")
	}
	return nil
}
