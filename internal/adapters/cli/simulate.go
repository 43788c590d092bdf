package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/viniciusfonseca/fulfillment-go/internal/application/releases"
)

// NewSimulateCommand creates the simulate command
func NewSimulateCommand() *cobra.Command {
	var (
		exclude   []string
		stockOnly bool
		pallets   float64
		whole     bool
		commit    bool
	)

	cmd := &cobra.Command{
		Use:   "simulate <order-id>",
		Short: "Simulate a fulfillment plan for an order",
		Long: `Simulate which quantities of an order's open lines can be released.
The plan is printed and discarded unless --commit is given, in which case it
is persisted as an open release batch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildContainer()
			if err != nil {
				return err
			}
			defer c.close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			plan, err := c.service.SimulateFulfillment(ctx, releases.SimulateRequest{
				OrderID:       args[0],
				ExcludeFilter: exclude,
				StockOnly:     stockOnly,
				TargetPallets: decimal.NewFromFloat(pallets),
				WholePallet:   whole,
			})
			if err != nil {
				return err
			}

			printPlan(plan)

			if commit {
				releaseID, err := c.service.CommitFulfillment(ctx, plan)
				if err != nil {
					return err
				}
				fmt.Printf("\nCommitted release %s\n", releaseID)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&exclude, "exclude", nil,
		"Exclude lines by exact product code or description substring (repeatable)")
	cmd.Flags().BoolVar(&stockOnly, "stock-only", false,
		"Cap each line to its available-to-promise quantity")
	cmd.Flags().Float64Var(&pallets, "pallets", 0,
		"Target pallet count to allocate across lines (0 = no pallet allocation)")
	cmd.Flags().BoolVar(&whole, "whole", false,
		"Allocate whole pallets instead of fractional proportional shares")
	cmd.Flags().BoolVar(&commit, "commit", false,
		"Persist the simulated plan as an open release batch")

	return cmd
}
