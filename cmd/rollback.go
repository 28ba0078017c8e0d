package cmd

import (
	"github.com/spf13/cobra"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Switch traffic back to the non-active backend",
	Long: `Reads the active backend from the router config and promotes the
other one. No memory of previous promotions is needed; with exactly two
backends, "the other one" is always the rollback target.`,
	Args: cobra.NoArgs,
	RunE: runRollback,
}

func init() {
	rootCmd.AddCommand(rollbackCmd)
}

func runRollback(cmd *cobra.Command, args []string) error {
	if err := requireConfig(); err != nil {
		return err
	}

	outcome, err := getController().Rollback()
	if err != nil {
		return err
	}

	reportOutcome("Rolled back", outcome)
	return nil
}
