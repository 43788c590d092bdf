package config

import (
	"time"

	"github.com/viniciusfonseca/fulfillment-go/internal/domain/scheduling"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "fulfillment.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "fulfillment"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "fulfillment"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Engine defaults
	if cfg.Engine.RuptureHorizonDays == 0 {
		cfg.Engine.RuptureHorizonDays = scheduling.DefaultRuptureHorizonDays
	}

	// Scheduling defaults: two business days of lead time, shipments on
	// weekdays only, twelve releases per day
	if cfg.Schedule.MinLeadBusinessDays == 0 {
		cfg.Schedule.MinLeadBusinessDays = 2
	}
	if len(cfg.Schedule.AllowedWeekdays) == 0 {
		cfg.Schedule.AllowedWeekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}
	}
	if cfg.Schedule.MaxPerDay == 0 {
		cfg.Schedule.MaxPerDay = 12
	}
	if cfg.Schedule.AdvanceCapDays == 0 {
		cfg.Schedule.AdvanceCapDays = scheduling.DefaultAdvanceCapDays
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
}

// Weekdays converts the configured weekday names into time.Weekday values.
// Unknown names are skipped; validation rejects them upstream.
func (s ScheduleConfig) Weekdays() []time.Weekday {
	byName := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}

	weekdays := make([]time.Weekday, 0, len(s.AllowedWeekdays))
	for _, name := range s.AllowedWeekdays {
		if wd, ok := byName[name]; ok {
			weekdays = append(weekdays, wd)
		}
	}
	return weekdays
}
