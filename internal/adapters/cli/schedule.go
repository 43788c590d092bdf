package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/viniciusfonseca/fulfillment-go/internal/domain/scheduling"
)

// NewScheduleCommand creates the schedule command
func NewScheduleCommand() *cobra.Command {
	var (
		lead      int
		maxPerDay int
		apply     bool
	)

	cmd := &cobra.Command{
		Use:   "schedule <account-id>...",
		Short: "Assign expedition and appointment dates to accounts",
		Long: `Assess rupture resolution dates for the accounts in the given priority
order, then place each one on the expedition calendar respecting the lead
time, the allowed weekdays and the daily capacity cap.`,
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

			batch := make([]scheduling.ScheduleAccount, 0, len(assessments))
			for _, a := range assessments {
				batch = append(batch, scheduling.ScheduleAccount{
					AccountID:      a.AccountID,
					ResolutionDate: a.ResolutionDate,
				})
			}

			constraints := c.scheduleConstraints()
			if cmd.Flags().Changed("lead") {
				constraints.MinLeadBusinessDays = lead
			}
			if cmd.Flags().Changed("max-per-day") {
				constraints.MaxPerDay = maxPerDay
			}

			assignments, err := c.service.ScheduleReleases(ctx, batch, constraints)
			if err != nil {
				return err
			}

			printAssignments(assessments, assignments)

			if apply {
				stamped, err := applySchedule(ctx, c, assignments)
				if err != nil {
					return err
				}
				fmt.Printf("\nStamped %d open release(s)\n", stamped)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&lead, "lead", 0,
		"Minimum lead time in business days (overrides config)")
	cmd.Flags().IntVar(&maxPerDay, "max-per-day", 0,
		"Maximum releases per expedition day (overrides config)")
	cmd.Flags().BoolVar(&apply, "apply", false,
		"Stamp the assigned dates on each account's open releases")

	return cmd
}

// applySchedule writes each assignment's dates onto the account's open
// release batches and returns the number of releases updated
func applySchedule(ctx context.Context, c *container, assignments []scheduling.ScheduleAssignment) (int, error) {
	stamped := 0
	for _, assignment := range assignments {
		ids, err := c.releases.OpenReleaseIDsByAccount(ctx, assignment.AccountID)
		if err != nil {
			return stamped, err
		}
		for _, id := range ids {
			if err := c.releases.SetSchedule(ctx, id, assignment.ExpeditionDate, assignment.AppointmentDate); err != nil {
				return stamped, err
			}
			stamped++
		}
	}
	return stamped, nil
}
