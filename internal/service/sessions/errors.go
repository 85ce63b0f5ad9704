package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессии нет или она истекла
	ErrSessionNotFound = errors.New("sessions: session not found")

	// ErrServiceNotFound возвращается, когда выбранной услуги нет в каталоге
	ErrServiceNotFound = errors.New("sessions: service not found")

	// ErrNotConfirmed возвращается, когда бронирование сессии еще не подтверждено
	ErrNotConfirmed = errors.New("sessions: booking is not confirmed")

	// ErrSubmissionInFlight возвращается при повторной отправке данных во время финализации
	ErrSubmissionInFlight = errors.New("sessions: submission already in flight")

	// ErrSubmissionDiscarded возвращается, если пользователь ушел с шага до завершения финализации
	ErrSubmissionDiscarded = errors.New("sessions: submission discarded")

	// ErrInvalidField возвращается для неизвестного поля формы
	ErrInvalidField = errors.New("sessions: unknown form field")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("sessions: internal error")
)
