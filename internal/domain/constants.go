package domain

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Значения по умолчанию для сетки слотов
const (
	DefaultSlotStepMinutes = 30
	MinSlotStepMinutes     = 5
	MaxSlotStepMinutes     = 240
)

// Размер сетки календаря: 6 недель по 7 дней
const (
	DaysPerWeek    = 7
	WeeksPerMonth  = 6
	MonthGridCells = DaysPerWeek * WeeksPerMonth
)

// ActiveStatuses статусы бронирований, которые занимают слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
