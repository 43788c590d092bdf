package scheduling

import "time"

// addBusinessDays advances a date by n business days, skipping Saturdays
// and Sundays
func addBusinessDays(date time.Time, n int) time.Time {
	for n > 0 {
		date = date.AddDate(0, 0, 1)
		if !isWeekend(date) {
			n--
		}
	}
	return date
}

// snapToAllowedWeekday advances a date until it falls on an allowed weekday.
// An empty allowed set leaves the date untouched.
func snapToAllowedWeekday(date time.Time, allowed map[time.Weekday]bool) time.Time {
	if len(allowed) == 0 {
		return date
	}
	for !allowed[date.Weekday()] {
		date = date.AddDate(0, 0, 1)
	}
	return date
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func weekdaySet(weekdays []time.Weekday) map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(weekdays))
	for _, wd := range weekdays {
		set[wd] = true
	}
	return set
}
