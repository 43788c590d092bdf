package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/viniciusfonseca/fulfillment-go/internal/domain/scheduling"
)

// NewRuptureCommand creates the rupture command
func NewRuptureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rupture <account-id>...",
		Short: "Assess shortage resolution dates for accounts",
		Long: `Assess, for each account in the given priority order, the date its open
demand becomes satisfiable. Earlier accounts reserve availability ahead of
later ones.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := buildContainer()
			if err != nil {
				return err
			}
			defer c.close()

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			accounts, err := loadAccountDemands(ctx, c, args)
			if err != nil {
				return err
			}

			assessments, err := c.service.AssessRuptures(ctx, accounts)
			if err != nil {
				return err
			}

			printAssessments(assessments)
			return nil
		},
	}

	return cmd
}

// loadAccountDemands aggregates each account's open order lines into a
// demand batch, preserving the argument order as priority order
func loadAccountDemands(ctx context.Context, c *container, accountIDs []string) ([]scheduling.AccountDemand, error) {
	accounts := make([]scheduling.AccountDemand, 0, len(accountIDs))
	for _, accountID := range accountIDs {
		demands, err := c.orderLines.OpenDemandByAccount(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if len(demands) == 0 {
			return nil, fmt.Errorf("account %s has no open demand", accountID)
		}
		accounts = append(accounts, scheduling.AccountDemand{
			AccountID: accountID,
			Demands:   demands,
		})
	}
	return accounts, nil
}
