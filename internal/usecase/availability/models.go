package availability

import (
	"time"

	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// Period интервал работы в течение дня [Open, Close)
type Period struct {
	Open  types.TimeString
	Close types.TimeString
}

// Day доступность конкретной даты.
// DateAvailable=false - дата недоступна (слоты не показываются),
// DateAvailable=true и пустые Slots - все слоты заняты.
type Day struct {
	Date          time.Time
	DateAvailable bool
	Slots         []types.TimeString
}

// FullyBooked returns true if the date is open but every slot is taken
func (d *Day) FullyBooked() bool {
	return d.DateAvailable && len(d.Slots) == 0
}
