package get_day_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/usecase/availability"
)

type AvailabilityEngine interface {
	DayAvailability(ctx context.Context, date time.Time) (*availability.Day, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
