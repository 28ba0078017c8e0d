package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openclaw/gate-ctl/internal/backend"
	"github.com/openclaw/gate-ctl/internal/errors"
	"github.com/openclaw/gate-ctl/internal/promotion"
)

var promoteCmd = &cobra.Command{
	Use:   "promote <primary|secondary>",
	Short: "Make a backend the active traffic target",
	Long: `Rewrites the router config so the named backend receives all new
traffic, then signals the router to reload gracefully. In-flight
requests finish on the previously active backend.

Promoting the already-active backend is a no-op reload.`,
	Args: cobra.ExactArgs(1),
	RunE: runPromote,
}

var promoteConfirm bool

func init() {
	promoteCmd.Flags().BoolVar(&promoteConfirm, "confirm", false, "Poll router health after the reload")
	rootCmd.AddCommand(promoteCmd)
}

func runPromote(cmd *cobra.Command, args []string) error {
	if err := requireConfig(); err != nil {
		return err
	}

	target, err := backend.Parse(args[0])
	if err != nil {
		return errors.InvalidTarget(args[0])
	}

	controller := getController()

	var outcome *promotion.Outcome
	if promoteConfirm {
		outcome, err = controller.PromoteConfirmed(target)
	} else {
		outcome, err = controller.Promote(target)
	}
	if err != nil {
		return err
	}

	reportOutcome("Promoted", outcome)
	if promoteConfirm && !outcome.Degraded() {
		if outcome.Confirmed {
			logSuccess("Router confirmed healthy on port %d", cfg().RouterPort)
		} else {
			logWarning("Router health not confirmed after reload")
		}
	}
	return nil
}
