package cli

import (
	"fmt"
	"time"

	"github.com/viniciusfonseca/fulfillment-go/internal/domain/fulfillment"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/scheduling"
)

const dateLayout = "2006-01-02"

// printPlan renders a fulfillment plan in table format
func printPlan(plan *fulfillment.FulfillmentPlan) {
	fmt.Printf("Order %s — %s\n\n", plan.OrderID, plan.Classification)

	fmt.Printf("%-14s %-28s %12s %9s %12s %12s\n",
		"PRODUCT", "DESCRIPTION", "QUANTITY", "PALLETS", "WEIGHT", "VALUE")
	fmt.Println("────────────────────────────────────────────────────────────────────────────────────────────")
	for _, line := range plan.Lines {
		fmt.Printf("%-14s %-28s %12s %9s %12s %12s\n",
			line.ProductID, truncate(line.Description, 28),
			line.Quantity.String(), line.Pallets.String(),
			line.Weight.StringFixed(2), line.Value.StringFixed(2))
	}
	fmt.Println("────────────────────────────────────────────────────────────────────────────────────────────")
	fmt.Printf("%-43s %12s %9s %12s %12s\n", "TOTAL",
		"", plan.TotalPallets.String(), plan.TotalWeight.StringFixed(2), plan.TotalValue.StringFixed(2))

	if len(plan.Shortages) > 0 {
		fmt.Printf("\nShortages:\n")
		for _, s := range plan.Shortages {
			fmt.Printf("  %-14s requested %s, available %s\n",
				s.ProductID, s.Requested.String(), s.Available.String())
		}
	}
}

// printAssessments renders rupture assessments in priority order
func printAssessments(assessments []scheduling.RuptureAssessment) {
	fmt.Printf("%-12s %-12s %s\n", "ACCOUNT", "RESOLVES", "RUPTURE")
	fmt.Println("─────────────────────────────────────")
	for _, a := range assessments {
		rupture := ""
		if a.Rupture {
			rupture = "yes"
		}
		fmt.Printf("%-12s %-12s %s\n", a.AccountID, a.ResolutionDate.Format(dateLayout), rupture)
	}
}

// printAssignments renders schedule assignments alongside their assessments
func printAssignments(assessments []scheduling.RuptureAssessment, assignments []scheduling.ScheduleAssignment) {
	resolutions := make(map[string]time.Time, len(assessments))
	for _, a := range assessments {
		resolutions[a.AccountID] = a.ResolutionDate
	}

	fmt.Printf("%-12s %-12s %-12s %s\n", "ACCOUNT", "RESOLVES", "EXPEDITION", "APPOINTMENT")
	fmt.Println("───────────────────────────────────────────────────")
	for _, assignment := range assignments {
		fmt.Printf("%-12s %-12s %-12s %s\n",
			assignment.AccountID,
			resolutions[assignment.AccountID].Format(dateLayout),
			assignment.ExpeditionDate.Format(dateLayout),
			assignment.AppointmentDate.Format(dateLayout))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
