package export_confirmation

import (
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/service/export"
)

type SessionService interface {
	Confirmed(id string) (*domain.ConfirmedBooking, error)
}

type Exporter interface {
	ICS(booking *domain.ConfirmedBooking) ([]byte, error)
	Links(booking *domain.ConfirmedBooking, icsURL string) (*export.Links, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
