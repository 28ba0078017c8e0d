package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openclaw/gate-ctl/internal/audit"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Display the gateway audit trail",
	Long: `Shows the append-only event log of promotions, rollbacks, degraded
switches, and instance starts. Newest events last.`,
	Args: cobra.NoArgs,
	RunE: runEvents,
}

var (
	eventsJSON  bool
	eventsCount int
)

func init() {
	eventsCmd.Flags().BoolVar(&eventsJSON, "json", false, "Output events as JSON lines")
	eventsCmd.Flags().IntVarP(&eventsCount, "count", "n", 0, "Show only the last N events")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	auditLogger := getAuditLogger()

	var events []audit.Event
	var err error
	if eventsCount > 0 {
		events, err = auditLogger.Tail(audit.GatewayComponent, eventsCount)
	} else {
		events, err = auditLogger.Events(audit.GatewayComponent)
	}
	if err != nil {
		return fmt.Errorf("failed to read audit log: %w", err)
	}

	if len(events) == 0 {
		logInfo("No events recorded")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, e := range events {
		if eventsJSON {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Fprintln(out, string(data))
		} else {
			ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
			if e.Details != "" {
				fmt.Fprintf(out, "[%s] %-9s %s\n", ts, e.Type, e.Details)
			} else {
				fmt.Fprintf(out, "[%s] %-9s\n", ts, e.Type)
			}
		}
	}

	return nil
}
