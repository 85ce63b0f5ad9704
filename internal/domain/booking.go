package domain

import (
	"time"

	"github.com/m04kA/SMC-BookingWizard/pkg/ptr"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// BookingStatus represents the status of a stored booking
type BookingStatus string

const (
	StatusPending         BookingStatus = "pending"
	StatusConfirmed       BookingStatus = "confirmed"
	StatusCancelledByUser BookingStatus = "cancelled_by_user"
)

// BookingDraft накапливается мастером шаг за шагом.
// Time задается только при заданной Date, Client - только при заданных Date и Time.
type BookingDraft struct {
	Service *Service
	Date    *time.Time
	Time    *types.TimeString
	Client  *ClientDetails
}

// IsComplete returns true when every step has been filled
func (d *BookingDraft) IsComplete() bool {
	return d.Service != nil && d.Date != nil && d.Time != nil && d.Client != nil
}

// Clone возвращает глубокую копию черновика
func (d *BookingDraft) Clone() BookingDraft {
	var out BookingDraft
	if d.Service != nil {
		out.Service = ptr.Ptr(*d.Service)
	}
	if d.Date != nil {
		out.Date = ptr.Ptr(*d.Date)
	}
	if d.Time != nil {
		out.Time = ptr.Ptr(*d.Time)
	}
	if d.Client != nil {
		out.Client = ptr.Ptr(*d.Client)
	}
	return out
}

// ConfirmedBooking финализированный черновик
type ConfirmedBooking struct {
	ID          int64  // ID в хранилище
	Reference   string // сгенерированный идентификатор для клиента
	Service     Service
	Date        time.Time
	Time        types.TimeString
	Client      ClientDetails
	Status      BookingStatus
	SubmittedAt time.Time
}

// StartsAt возвращает момент начала записи
func (b *ConfirmedBooking) StartsAt() (time.Time, error) {
	return b.Time.On(b.Date)
}

// EndsAt возвращает момент окончания записи с учетом длительности услуги
func (b *ConfirmedBooking) EndsAt() (time.Time, error) {
	start, err := b.StartsAt()
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(b.Service.DurationMinutes) * time.Minute), nil
}
