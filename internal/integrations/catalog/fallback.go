package catalog

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// Fallback каталог с graceful degradation: при недоступности внешнего каталога
// отвечает из встроенного. ErrServiceNotFound пробрасывается как есть.
type Fallback struct {
	primary  Catalog
	fallback Catalog
	log      Logger
}

// NewFallback создает каталог с резервным источником
func NewFallback(primary, fallback Catalog, log Logger) *Fallback {
	return &Fallback{primary: primary, fallback: fallback, log: log}
}

// ListServices получает услуги из основного каталога, при сбое из резервного
func (f *Fallback) ListServices(ctx context.Context) ([]*domain.Service, error) {
	services, err := f.primary.ListServices(ctx)
	if err == nil {
		return services, nil
	}

	f.log.Error("Catalog unavailable, serving built-in services: %v", err)
	return f.fallback.ListServices(ctx)
}

// GetService получает услугу из основного каталога, при сбое из резервного
func (f *Fallback) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	service, err := f.primary.GetService(ctx, id)
	if err == nil {
		return service, nil
	}
	if errors.Is(err, ErrServiceNotFound) {
		return nil, err
	}

	f.log.Error("Catalog unavailable, resolving service id=%d from built-in services: %v", id, err)
	return f.fallback.GetService(ctx, id)
}
