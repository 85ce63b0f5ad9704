package booking_wizard

import "errors"

var (
	// ErrSubmissionInFlight возвращается при повторной отправке, пока первая не завершилась
	ErrSubmissionInFlight = errors.New("booking_wizard: submission already in flight")

	// ErrFinalizationDiscarded возвращается, если пользователь ушел с шага до завершения финализации
	ErrFinalizationDiscarded = errors.New("booking_wizard: finalization result discarded")

	// ErrFinalizationFailed возвращается, если финализация не удалась
	ErrFinalizationFailed = errors.New("booking_wizard: finalization failed")

	// ErrInternal возвращается при ошибках движка доступности
	ErrInternal = errors.New("booking_wizard: internal error")
)

// MsgFinalizationFailed общая ошибка формы при неудачной финализации
const MsgFinalizationFailed = "Não foi possível confirmar o agendamento. Tente novamente."
