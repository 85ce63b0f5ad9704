package availability

import "errors"

var (
	// ErrInvalidPeriod возвращается при некорректном периоде работы
	ErrInvalidPeriod = errors.New("availability: invalid working period")

	// ErrInvalidStep возвращается при некорректном шаге сетки
	ErrInvalidStep = errors.New("availability: invalid slot step")

	// ErrInvalidMonth возвращается при некорректном месяце
	ErrInvalidMonth = errors.New("availability: invalid month")

	// ErrInternal возвращается при ошибках источника бронирований
	ErrInternal = errors.New("availability: internal error")
)
