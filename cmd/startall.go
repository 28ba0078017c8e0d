package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openclaw/gate-ctl/internal/app"
)

var startAllCmd = &cobra.Command{
	Use:   "start-all",
	Short: "Start both backends and the router",
	Long: `Brings up the full gateway: both proxy instances first, then the
router once its upstreams exist to forward to. A missing router config
is bootstrapped with primary active.

Startup is fail-fast; the first instance that fails to launch aborts
the sequence.`,
	Args: cobra.NoArgs,
	RunE: runStartAll,
}

func init() {
	rootCmd.AddCommand(startAllCmd)
}

func runStartAll(cmd *cobra.Command, args []string) error {
	if err := requireConfig(); err != nil {
		return err
	}

	c := cfg()

	logInfo("Starting gateway (backends %d/%d, router %d)", c.PrimaryPort, c.SecondaryPort, c.RouterPort)

	if err := app.Default.Orchestrator().Run(); err != nil {
		return err
	}

	logSuccess("Gateway started, router listening on port %d", c.RouterPort)

	fmt.Fprint(cmd.OutOrStdout(), getReporter().Report().Render())
	return nil
}
