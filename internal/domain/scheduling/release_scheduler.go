package scheduling

import (
	"time"

	"github.com/viniciusfonseca/fulfillment-go/internal/domain/shared"
)

// Scheduler assigns expedition and appointment dates to a batch of accounts,
// respecting the minimum lead time, the allowed-weekday set and a shared
// daily capacity cap. Day occupancy is private to one Schedule call.
type Scheduler struct {
	clock shared.Clock
}

// NewScheduler creates a release scheduler
func NewScheduler(clock shared.Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// Schedule places accounts in the given priority order. Each account's
// candidate date is the later of the batch minimum date and the account's
// rupture resolution date, snapped forward to an allowed weekday; full days
// are skipped one at a time, re-snapping, until a day with free capacity is
// found. The appointment date is the calendar day after the expedition date,
// with no weekday restriction.
//
// The day-advance loop is bounded by Constraints.AdvanceCapDays; exceeding it
// (for example with MaxPerDay set to zero) fails the whole batch with an
// unresolvable error.
func (s *Scheduler) Schedule(accounts []ScheduleAccount, constraints Constraints) ([]ScheduleAssignment, error) {
	allowed := weekdaySet(constraints.AllowedWeekdays)
	advanceCap := constraints.AdvanceCapDays
	if advanceCap <= 0 {
		advanceCap = DefaultAdvanceCapDays
	}

	baseMinimum := addBusinessDays(s.clock.Today(), constraints.MinLeadBusinessDays)
	baseMinimum = snapToAllowedWeekday(baseMinimum, allowed)

	occupancy := make(map[time.Time]int)
	assignments := make([]ScheduleAssignment, 0, len(accounts))

	for _, account := range accounts {
		candidate := baseMinimum
		if resolution := shared.Midnight(account.ResolutionDate); resolution.After(candidate) {
			candidate = snapToAllowedWeekday(resolution, allowed)
		}

		advanced := 0
		for constraints.MaxPerDay <= 0 || occupancy[candidate] >= constraints.MaxPerDay {
			candidate = snapToAllowedWeekday(candidate.AddDate(0, 0, 1), allowed)
			advanced++
			if advanced > advanceCap {
				return nil, shared.NewUnresolvableError(
					"no expedition day with free capacity for account %s within %d days",
					account.AccountID, advanceCap)
			}
		}

		occupancy[candidate]++
		assignments = append(assignments, ScheduleAssignment{
			AccountID:       account.AccountID,
			ExpeditionDate:  candidate,
			AppointmentDate: candidate.AddDate(0, 0, 1),
		})
	}

	return assignments, nil
}
