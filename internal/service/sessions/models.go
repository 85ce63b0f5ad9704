package sessions

import (
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/usecase/booking_wizard"
)

// Config параметры сессий мастера
type Config struct {
	TTL             time.Duration // время жизни сессии без активности, 0 - без ограничения
	FinalizeTimeout time.Duration
}

// Result исход намерения и состояние мастера после него
type Result struct {
	SessionID string
	Applied   bool
	State     booking_wizard.State
}

type session struct {
	wizard   *booking_wizard.Wizard
	lastSeen time.Time
}
