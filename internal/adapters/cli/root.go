package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fulfillment",
		Short: "Fulfillment CLI - Simulate, release and schedule customer shipments",
		Long: `Fulfillment CLI drives the order fulfillment engine: it simulates which
quantities of an order can be released now, packs them into pallet counts,
analyzes shortage resolution dates and schedules expedition appointments.

Examples:
  fulfillment simulate ORD-1042 --pallets 12 --whole
  fulfillment simulate ORD-1042 --stock-only --exclude "display rack" --commit
  fulfillment rupture ACC-07 ACC-12 ACC-31
  fulfillment schedule ACC-07 ACC-12 --max-per-day 3`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewRuptureCommand())
	rootCmd.AddCommand(NewScheduleCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
