package domain

import "time"

// CalendarDay ячейка календаря месяца.
// Available и Selected вычисляются, а не хранятся.
type CalendarDay struct {
	Date      time.Time
	Available bool
	Selected  bool
}

// DateOnly обнуляет время, оставляя дату в той же локации
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSameDay проверяет, что две даты относятся к одному и тому же дню
func IsSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DaysIn возвращает количество дней в месяце
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
