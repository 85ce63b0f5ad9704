package sessions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// Catalog источник услуг для выбора на первом шаге
type Catalog interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// SessionGauge учет числа живых сессий
type SessionGauge interface {
	SetActiveSessions(n int)
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

type nopGauge struct{}

func (nopGauge) SetActiveSessions(int) {}
