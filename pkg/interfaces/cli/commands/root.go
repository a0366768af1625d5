package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	formatFlag  string
	verboseFlag bool
)

// Execute runs the root command
func Execute(ctx context.Context, version string) error {
	rootCmd := newRootCommand(version)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "plansim",
		Short: "plansim - deterministic MRP simulation engine",
		Long: `plansim runs time-phased material requirements planning simulations:
it nets independent demand against on-hand inventory and scheduled receipts,
explodes planned orders through the BOM, and reports planned orders,
projected inventory and plan exceptions for each scenario.`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "output format (text, json, csv)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newShowCommand())

	return rootCmd
}

func requireFlag(value, name string) error {
	if value == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}
