package get_day_availability

import (
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/usecase/availability"
)

// DayResponse HTTP response model.
// dateAvailable=false - дата закрыта, dateAvailable=true и fullyBooked=true - все слоты заняты.
type DayResponse struct {
	Date          string   `json:"date"`
	DateAvailable bool     `json:"dateAvailable"`
	FullyBooked   bool     `json:"fullyBooked"`
	Slots         []string `json:"slots"`
}

// FromDomainDay конвертирует доступность дня в HTTP модель
func FromDomainDay(day *availability.Day) *DayResponse {
	slots := make([]string, len(day.Slots))
	for i, s := range day.Slots {
		slots[i] = s.String()
	}
	return &DayResponse{
		Date:          day.Date.Format(domain.DateFormat),
		DateAvailable: day.DateAvailable,
		FullyBooked:   day.FullyBooked(),
		Slots:         slots,
	}
}
