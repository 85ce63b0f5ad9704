package export

import "errors"

var (
	// ErrInvalidBooking возвращается, если время бронирования не разбирается
	ErrInvalidBooking = errors.New("export: invalid booking")

	// ErrNoContactNumber возвращается, если номер WhatsApp салона не настроен
	ErrNoContactNumber = errors.New("export: contact number is not configured")
)
