package steps

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/viniciusfonseca/fulfillment-go/internal/domain/scheduling"
	"github.com/viniciusfonseca/fulfillment-go/internal/domain/shared"
)

type schedulingContext struct {
	clock       *shared.MockClock
	constraints scheduling.Constraints
	accounts    []scheduling.ScheduleAccount
	assignments []scheduling.ScheduleAssignment
	err         error
}

var weekdayByName = map[string]time.Weekday{
	"Sun": time.Sunday,
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
}

func parseDay(value string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return day.UTC(), nil
}

func (sctx *schedulingContext) todayIs(value string) error {
	day, err := parseDay(value)
	if err != nil {
		return err
	}
	sctx.clock = shared.NewMockClock(day)
	sctx.accounts = nil
	sctx.assignments = nil
	sctx.err = nil
	return nil
}

func (sctx *schedulingContext) scheduleConstraints(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		lead, err := strconv.Atoi(row.Cells[0].Value)
		if err != nil {
			return fmt.Errorf("invalid lead time %q: %w", row.Cells[0].Value, err)
		}
		maxPerDay, err := strconv.Atoi(row.Cells[2].Value)
		if err != nil {
			return fmt.Errorf("invalid daily cap %q: %w", row.Cells[2].Value, err)
		}

		var weekdays []time.Weekday
		for _, name := range strings.Split(row.Cells[1].Value, ",") {
			weekday, ok := weekdayByName[strings.TrimSpace(name)]
			if !ok {
				return fmt.Errorf("unknown weekday %q", name)
			}
			weekdays = append(weekdays, weekday)
		}

		sctx.constraints = scheduling.Constraints{
			MinLeadBusinessDays: lead,
			AllowedWeekdays:     weekdays,
			MaxPerDay:           maxPerDay,
		}
	}
	return nil
}

func (sctx *schedulingContext) accountsToSchedule(table *godog.Table) error {
	sctx.accounts = nil
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		resolution, err := parseDay(row.Cells[1].Value)
		if err != nil {
			return err
		}
		sctx.accounts = append(sctx.accounts, scheduling.ScheduleAccount{
			AccountID:      row.Cells[0].Value,
			ResolutionDate: resolution,
		})
	}
	return nil
}

func (sctx *schedulingContext) iScheduleTheBatch() error {
	if err := sctx.iAttemptToScheduleTheBatch(); err != nil {
		return err
	}
	if sctx.err != nil {
		return fmt.Errorf("scheduling failed: %w", sctx.err)
	}
	return nil
}

func (sctx *schedulingContext) iAttemptToScheduleTheBatch() error {
	if sctx.clock == nil {
		return errors.New("today is not set")
	}
	scheduler := scheduling.NewScheduler(sctx.clock)
	sctx.assignments, sctx.err = scheduler.Schedule(sctx.accounts, sctx.constraints)
	return nil
}

func (sctx *schedulingContext) assignmentFor(accountID string) (scheduling.ScheduleAssignment, error) {
	for _, assignment := range sctx.assignments {
		if assignment.AccountID == accountID {
			return assignment, nil
		}
	}
	return scheduling.ScheduleAssignment{}, fmt.Errorf("no assignment for account %s", accountID)
}

func (sctx *schedulingContext) accountShouldExpediteOn(accountID, value string) error {
	expected, err := parseDay(value)
	if err != nil {
		return err
	}
	assignment, err := sctx.assignmentFor(accountID)
	if err != nil {
		return err
	}
	if !assignment.ExpeditionDate.Equal(expected) {
		return fmt.Errorf("expected %s to expedite on %s, got %s",
			accountID, expected.Format("2006-01-02"), assignment.ExpeditionDate.Format("2006-01-02"))
	}
	return nil
}

func (sctx *schedulingContext) accountShouldHaveAppointmentOn(accountID, value string) error {
	expected, err := parseDay(value)
	if err != nil {
		return err
	}
	assignment, err := sctx.assignmentFor(accountID)
	if err != nil {
		return err
	}
	if !assignment.AppointmentDate.Equal(expected) {
		return fmt.Errorf("expected %s appointment on %s, got %s",
			accountID, expected.Format("2006-01-02"), assignment.AppointmentDate.Format("2006-01-02"))
	}
	return nil
}

func (sctx *schedulingContext) schedulingShouldFailAsUnresolvable() error {
	if sctx.err == nil {
		return errors.New("expected scheduling to fail, but it succeeded")
	}
	var unresolvable *shared.UnresolvableError
	if !errors.As(sctx.err, &unresolvable) {
		return fmt.Errorf("expected an unresolvable error, got %v", sctx.err)
	}
	return nil
}

// InitializeSchedulingScenario registers the release scheduling step definitions
func InitializeSchedulingScenario(sc *godog.ScenarioContext) {
	ctx := &schedulingContext{}

	sc.Step(`^today is "([^"]*)"$`, ctx.todayIs)
	sc.Step(`^schedule constraints:$`, ctx.scheduleConstraints)
	sc.Step(`^accounts to schedule:$`, ctx.accountsToSchedule)
	sc.Step(`^I schedule the batch$`, ctx.iScheduleTheBatch)
	sc.Step(`^I attempt to schedule the batch$`, ctx.iAttemptToScheduleTheBatch)
	sc.Step(`^account "([^"]*)" should expedite on "([^"]*)"$`, ctx.accountShouldExpediteOn)
	sc.Step(`^account "([^"]*)" should have appointment on "([^"]*)"$`, ctx.accountShouldHaveAppointmentOn)
	sc.Step(`^scheduling should fail as unresolvable$`, ctx.schedulingShouldFailAsUnresolvable)
}
