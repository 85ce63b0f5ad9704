package get_month_calendar

import (
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

type AvailabilityEngine interface {
	MonthCalendar(year int, month time.Month, selected *time.Time) ([]*domain.CalendarDay, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
