package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// Engine вычисляет доступные даты и слоты
type Engine struct {
	policy       Policy
	reservations ReservationSource
	timeProvider TimeProvider
	logger       Logger
}

// NewEngine создает движок доступности. Если clock == nil, используется системное время.
func NewEngine(policy Policy, reservations ReservationSource, clock TimeProvider, logger Logger) *Engine {
	if clock == nil {
		clock = &RealTimeProvider{}
	}
	return &Engine{
		policy:       policy,
		reservations: reservations,
		timeProvider: clock,
		logger:       logger,
	}
}

// SlotGrid возвращает копию канонической сетки слотов
func (e *Engine) SlotGrid() []types.TimeString {
	grid := make([]types.TimeString, len(e.policy.SlotGrid))
	copy(grid, e.policy.SlotGrid)
	return grid
}

// IsDateAvailable проверяет дату: не в прошлом, не выходной день недели, не закрытая дата
func (e *Engine) IsDateAvailable(date time.Time) bool {
	if isDateInPast(date, e.timeProvider.Now()) {
		return false
	}
	if e.policy.isExcludedWeekday(date.Weekday()) {
		return false
	}
	if e.policy.isBlackout(date) {
		return false
	}
	return true
}

// AvailableSlotsFor возвращает сетку без занятых слотов в порядке сетки.
// Для недоступной даты возвращает пустой список.
func (e *Engine) AvailableSlotsFor(ctx context.Context, date time.Time) ([]types.TimeString, error) {
	if !e.IsDateAvailable(date) {
		return []types.TimeString{}, nil
	}

	reserved, err := e.reservations.ReservedSlots(ctx, domain.DateOnly(date))
	if err != nil {
		e.logger.Error("AvailableSlotsFor: failed to get reserved slots for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get reserved slots: %v", ErrInternal, err)
	}

	taken := make(map[types.TimeString]struct{}, len(reserved))
	for _, slot := range reserved {
		taken[slot] = struct{}{}
	}

	slots := make([]types.TimeString, 0, len(e.policy.SlotGrid))
	for _, slot := range e.policy.SlotGrid {
		if _, ok := taken[slot]; !ok {
			slots = append(slots, slot)
		}
	}

	return slots, nil
}

// IsSlotAvailable проверяет, что слот есть среди свободных слотов даты
func (e *Engine) IsSlotAvailable(ctx context.Context, date time.Time, slot types.TimeString) (bool, error) {
	slots, err := e.AvailableSlotsFor(ctx, date)
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if s == slot {
			return true, nil
		}
	}
	return false, nil
}

// DayAvailability возвращает доступность даты вместе со свободными слотами
func (e *Engine) DayAvailability(ctx context.Context, date time.Time) (*Day, error) {
	day := &Day{
		Date:          domain.DateOnly(date),
		DateAvailable: e.IsDateAvailable(date),
		Slots:         []types.TimeString{},
	}
	if !day.DateAvailable {
		e.logger.Info("DayAvailability: date %s is not available", date.Format(domain.DateFormat))
		return day, nil
	}

	slots, err := e.AvailableSlotsFor(ctx, date)
	if err != nil {
		return nil, err
	}
	day.Slots = slots

	e.logger.Info("DayAvailability: %d/%d slots free on %s",
		len(slots), len(e.policy.SlotGrid), date.Format(domain.DateFormat))
	return day, nil
}

// MonthCalendar возвращает сетку месяца с признаками доступности и выбора
func (e *Engine) MonthCalendar(year int, month time.Month, selected *time.Time) ([]*domain.CalendarDay, error) {
	grid, err := BuildMonthGrid(year, month)
	if err != nil {
		return nil, err
	}

	for _, cell := range grid {
		if cell == nil {
			continue
		}
		cell.Available = e.IsDateAvailable(cell.Date)
		cell.Selected = selected != nil && domain.IsSameDay(cell.Date, *selected)
	}

	return grid, nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня. Время суток не учитывается,
// сравниваются календарные даты каждой из величин в её собственной локации.
func isDateInPast(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}
