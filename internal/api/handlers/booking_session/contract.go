package booking_session

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/service/sessions"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

type SessionService interface {
	Start() *sessions.Result
	State(id string) (*sessions.Result, error)
	SelectService(ctx context.Context, id string, serviceID int64) (*sessions.Result, error)
	SelectDate(ctx context.Context, id string, date time.Time) (*sessions.Result, error)
	SelectTime(ctx context.Context, id string, slot types.TimeString) (*sessions.Result, error)
	SubmitDetails(ctx context.Context, id string, details domain.ClientDetails) (*sessions.Result, error)
	GoBack(id string) (*sessions.Result, error)
	StartNewBooking(id string) (*sessions.Result, error)
	ClearFieldError(id string, field string) (*sessions.Result, error)
	Delete(id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
