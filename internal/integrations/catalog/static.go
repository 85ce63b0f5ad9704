package catalog

import (
	"context"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// DefaultServices встроенный каталог салона
var DefaultServices = []domain.Service{
	{ID: 1, Name: "Corte Feminino", Description: "Corte com lavagem e finalização", Price: 85.00, DurationMinutes: 90, Category: "cabelo"},
	{ID: 2, Name: "Corte Masculino", Description: "Corte tradicional ou degradê", Price: 45.00, DurationMinutes: 30, Category: "cabelo"},
	{ID: 3, Name: "Escova", Description: "Escova modeladora", Price: 60.00, DurationMinutes: 60, Category: "cabelo"},
	{ID: 4, Name: "Manicure", Description: "Cutilagem e esmaltação", Price: 35.00, DurationMinutes: 45, Category: "unhas"},
	{ID: 5, Name: "Design de Sobrancelhas", Description: "Design com pinça", Price: 40.00, DurationMinutes: 30, Category: "estética"},
}

// Static каталог из конфигурации, используется без внешнего сервиса
type Static struct {
	services []domain.Service
}

// NewStatic создает каталог. Пустой список заменяется DefaultServices.
func NewStatic(services []domain.Service) *Static {
	if len(services) == 0 {
		services = DefaultServices
	}
	out := make([]domain.Service, len(services))
	copy(out, services)
	return &Static{services: out}
}

// ListServices возвращает копии всех услуг в порядке конфигурации
func (s *Static) ListServices(_ context.Context) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0, len(s.services))
	for i := range s.services {
		svc := s.services[i]
		result = append(result, &svc)
	}
	return result, nil
}

// GetService возвращает копию услуги по ID
func (s *Static) GetService(_ context.Context, id int64) (*domain.Service, error) {
	for i := range s.services {
		if s.services[i].ID == id {
			svc := s.services[i]
			return &svc, nil
		}
	}
	return nil, ErrServiceNotFound
}
