package memory

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("memory.store: booking not found")

	// ErrSlotTaken возвращается при попытке сохранить второе активное бронирование на слот
	ErrSlotTaken = errors.New("memory.store: slot already taken")
)
