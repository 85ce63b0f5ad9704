package config

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Weekdays разбирает названия закрытых дней недели
func (a AvailabilityConfig) Weekdays() ([]time.Weekday, error) {
	out := make([]time.Weekday, 0, len(a.ExcludedWeekdays))
	for _, name := range a.ExcludedWeekdays {
		day, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidConfig, name)
		}
		out = append(out, day)
	}
	return out, nil
}

// Blackouts разбирает закрытые даты YYYY-MM-DD
func (a AvailabilityConfig) Blackouts() ([]time.Time, error) {
	out := make([]time.Time, 0, len(a.BlackoutDates))
	for _, s := range a.BlackoutDates {
		date, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, fmt.Errorf("%w: blackout date %q", ErrInvalidConfig, s)
		}
		out = append(out, date)
	}
	return out, nil
}
