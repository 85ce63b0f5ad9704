package get_month_calendar

import "github.com/m04kA/SMC-BookingWizard/internal/domain"

// CalendarResponse сетка месяца из 42 ячеек, неделя начинается с воскресенья.
// Пустые ячейки выравнивания - null.
type CalendarResponse struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Days  []*DayResponse `json:"days"`
}

// DayResponse ячейка календаря
type DayResponse struct {
	Date      string `json:"date"`
	Day       int    `json:"day"`
	Available bool   `json:"available"`
	Selected  bool   `json:"selected"`
}

// FromDomainGrid конвертирует сетку месяца в HTTP модель
func FromDomainGrid(year, month int, grid []*domain.CalendarDay) *CalendarResponse {
	days := make([]*DayResponse, len(grid))
	for i, cell := range grid {
		if cell == nil {
			continue
		}
		days[i] = &DayResponse{
			Date:      cell.Date.Format(domain.DateFormat),
			Day:       cell.Date.Day(),
			Available: cell.Available,
			Selected:  cell.Selected,
		}
	}
	return &CalendarResponse{Year: year, Month: month, Days: days}
}
