package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the stage sequence and current checkpoint",
	RunE:  runPlan,
}

var (
	planDoneStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	planNextStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	planPendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	planDestructiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	current := a.Checkpoint()
	seq := a.Sequence(cmd.Context())

	var b strings.Builder
	b.WriteString("Provisioning plan\n\n")
	for _, stage := range seq.Stages() {
		line := fmt.Sprintf("%d. %-12s %s", stage.Ordinal, stage.Name, stage.Summary)
		if stage.Destructive {
			line += planDestructiveStyle.Render("  [destructive]")
		}
		if stage.RebootTerminal {
			line += "  [reboots]"
		}

		switch {
		case stage.Ordinal < current:
			b.WriteString("  " + planDoneStyle.Render("done") + "  " + line)
		case stage.Ordinal == current:
			b.WriteString("  " + planNextStyle.Render("next") + "  " + line)
		default:
			b.WriteString("        " + planPendingStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if current > seq.Len() {
		b.WriteString("\nAll stages are complete.\n")
	} else {
		b.WriteString("\nRun 'mdforge setup' to execute the next stage.\n")
	}

	fmt.Fprint(cmd.OutOrStdout(), b.String())
	return nil
}
