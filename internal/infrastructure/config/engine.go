package config

// EngineConfig holds tuning for the fulfillment engine
type EngineConfig struct {
	// Forward search horizon of the rupture analyzer, in days
	RuptureHorizonDays int `mapstructure:"rupture_horizon_days" validate:"min=1,max=365"`
}

// ScheduleConfig holds the default constraints of a scheduling batch.
// Allowed weekdays use English names ("monday" .. "sunday").
type ScheduleConfig struct {
	MinLeadBusinessDays int      `mapstructure:"min_lead_business_days" validate:"min=0"`
	AllowedWeekdays     []string `mapstructure:"allowed_weekdays" validate:"omitempty,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	MaxPerDay           int      `mapstructure:"max_per_day" validate:"min=1"`

	// Cap on the day-advance loop when every candidate day is full
	AdvanceCapDays int `mapstructure:"advance_cap_days" validate:"min=1"`
}
