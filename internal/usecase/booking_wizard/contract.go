package booking_wizard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// AvailabilityEngine движок доступности дат и слотов
type AvailabilityEngine interface {
	IsDateAvailable(date time.Time) bool
	AvailableSlotsFor(ctx context.Context, date time.Time) ([]types.TimeString, error)
}

// Finalizer превращает полный черновик в подтвержденное бронирование.
// Cancel освобождает слот бронирования, результат которого мастер отбросил.
type Finalizer interface {
	Finalize(ctx context.Context, draft domain.BookingDraft) (*domain.ConfirmedBooking, error)
	Cancel(ctx context.Context, reference string) error
}

// Recorder учет переходов мастера в метриках
type Recorder interface {
	ObserveTransition(intent, result string)
	ObserveConfirmed()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type nopRecorder struct{}

func (nopRecorder) ObserveTransition(string, string) {}
func (nopRecorder) ObserveConfirmed()                {}
