package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/openclaw/gate-ctl/internal/app"
	"github.com/openclaw/gate-ctl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "gate-ctl",
	Short: "OpenClaw gateway blue/green traffic control",
	Long: `gate-ctl switches live traffic between two LLM proxy instances
behind an HAProxy router.

The router listens on one stable port and forwards to the active
backend:
  - primary    127.0.0.1:4001 (blue)
  - secondary  127.0.0.1:4002 (green)

Promotion rewrites the router config and sends SIGUSR2 so existing
requests drain on the old backend while new ones hit the new one.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
		if err := app.Default.LoadErr; err != nil {
			logWarning("%v; running with defaults", err)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)
