package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdforge/mdforge/internal/report"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show array, disk, and share health",
	Long: `Status collects a point-in-time report: md array state, per-disk SMART
summaries, disk usage of the mounted volume, and the tail of the latest
virus scan log.

With --serve the same report is exposed as a small HTTP dashboard that
refreshes itself.`,
	RunE: runStatus,
}

var (
	statusServe bool
	statusPort  int
)

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusServe, "serve", false, "serve the report over HTTP instead of printing it")
	statusCmd.Flags().IntVar(&statusPort, "port", 0, "dashboard port (default: from config)")
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if statusServe {
		if statusPort > 0 {
			a.Config().DashboardPort = statusPort
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Serving dashboard on http://0.0.0.0:%d (Ctrl-C to stop)\n", a.Config().DashboardPort)
		return a.Serve(cmd.Context())
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.Render(a.Status(cmd.Context())))
	return nil
}
