package finalize_booking

import "errors"

var (
	// ErrIncompleteDraft возвращается, если в черновике не хватает услуги, даты, времени или клиента
	ErrIncompleteDraft = errors.New("finalize_booking: draft is incomplete")

	// ErrDateUnavailable возвращается, когда дата стала недоступной
	ErrDateUnavailable = errors.New("finalize_booking: date is not available")

	// ErrSlotNotAvailable возвращается, когда слот уже занят или не входит в сетку
	ErrSlotNotAvailable = errors.New("finalize_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("finalize_booking: internal error")
)
