package scheduling

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductDemand is one product's demanded quantity within an account's batch
type ProductDemand struct {
	ProductID string
	Quantity  decimal.Decimal
}

// AccountDemand is the aggregated demand of one customer account. Accounts
// are handed to the analyzer already sorted by priority; ties are broken
// upstream by a stable key.
type AccountDemand struct {
	AccountID string
	Demands   []ProductDemand
}

// RuptureAssessment records when an account's demand becomes satisfiable.
// Rupture is informational: when set, no resolution was found within the
// search horizon and ResolutionDate is the last day searched.
type RuptureAssessment struct {
	AccountID      string
	ResolutionDate time.Time
	Rupture        bool
}

// ScheduleAccount is one account to place on the expedition calendar
type ScheduleAccount struct {
	AccountID      string
	ResolutionDate time.Time
}

// ScheduleAssignment is the calendar outcome for one account
type ScheduleAssignment struct {
	AccountID       string
	ExpeditionDate  time.Time
	AppointmentDate time.Time
}

// Constraints bound a scheduling batch
type Constraints struct {
	MinLeadBusinessDays int
	AllowedWeekdays     []time.Weekday
	MaxPerDay           int
	// AdvanceCapDays bounds the day-advance loop when every candidate day is
	// full; exceeding it fails the batch. Zero means the default cap.
	AdvanceCapDays int
}

// DefaultAdvanceCapDays bounds the scheduler's day-advance loop so that a
// pathological configuration such as MaxPerDay = 0 cannot spin forever
const DefaultAdvanceCapDays = 365
