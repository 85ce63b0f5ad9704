package catalog

import (
	"context"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// Catalog источник услуг салона
type Catalog interface {
	ListServices(ctx context.Context) ([]*domain.Service, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
