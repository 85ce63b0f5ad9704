package finalize_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// BookingRepository интерфейс хранилища бронирований
type BookingRepository interface {
	ReservedSlots(ctx context.Context, date time.Time) ([]types.TimeString, error)
	Create(ctx context.Context, booking *domain.ConfirmedBooking) (*domain.ConfirmedBooking, error)
	Cancel(ctx context.Context, reference string) error
}

// AvailabilityPolicy календарные правила и сетка слотов
type AvailabilityPolicy interface {
	IsDateAvailable(date time.Time) bool
	SlotGrid() []types.TimeString
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
