package booking_wizard

import (
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// Названия намерений для логов и метрик
const (
	IntentSelectService   = "select_service"
	IntentSelectDate      = "select_date"
	IntentSelectTime      = "select_time"
	IntentSubmitDetails   = "submit_details"
	IntentGoBack          = "go_back"
	IntentStartNewBooking = "start_new_booking"
)

// Исходы намерений
const (
	resultApplied   = "applied"
	resultRefused   = "refused"
	resultInvalid   = "invalid"
	resultFailed    = "failed"
	resultDiscarded = "discarded"
)

// State снимок состояния мастера для слоя представления
type State struct {
	Step          domain.Step
	Progress      float64
	Draft         domain.BookingDraft
	Slots         []types.TimeString // свободные слоты выбранной даты
	DateAvailable bool
	Errors        domain.ErrorMap
	Confirmed     *domain.ConfirmedBooking
	Submitting    bool
}
