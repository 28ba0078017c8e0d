package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/openclaw/gate-ctl/internal/tui"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Interactive dashboard for watching and switching traffic",
	Long: `Full-screen dashboard showing the active backend, per-tier health,
and the recent event feed, refreshed continuously.

Keys:
  1  promote primary
  2  promote secondary
  r  rollback
  q  quit`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

var monitorInterval int

func init() {
	monitorCmd.Flags().IntVar(&monitorInterval, "interval", 2, "Refresh interval in seconds")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	interval := time.Duration(monitorInterval) * time.Second

	return tui.RunDashboard(getReporter(), getController(), getAuditLogger(), interval)
}
