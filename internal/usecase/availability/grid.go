package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// BuildMonthGrid строит сетку месяца из 42 ячеек (6 недель по 7 дней, неделя с воскресенья).
// Ячейки до первого и после последнего дня месяца равны nil.
func BuildMonthGrid(year int, month time.Month) ([]*domain.CalendarDay, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := int(first.Weekday()) // Sunday = 0
	days := domain.DaysIn(year, month)

	grid := make([]*domain.CalendarDay, domain.MonthGridCells)
	for day := 1; day <= days; day++ {
		grid[offset+day-1] = &domain.CalendarDay{
			Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		}
	}

	return grid, nil
}
