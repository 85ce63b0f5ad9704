package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// Policy правила доступности: выходные дни недели, закрытые даты и сетка слотов
type Policy struct {
	ExcludedWeekdays []time.Weekday
	BlackoutDates    []time.Time
	SlotGrid         []types.TimeString
}

// DefaultPeriods рабочие часы по умолчанию с перерывом в середине дня
func DefaultPeriods() []Period {
	return []Period{
		{Open: "09:00", Close: "12:00"},
		{Open: "14:00", Close: "17:30"},
	}
}

// DefaultPolicy суббота и воскресенье закрыты, закрытых дат нет,
// сетка 09:00-11:30 и 14:00-17:00 с шагом 30 минут
func DefaultPolicy() Policy {
	grid, err := BuildSlotGrid(DefaultPeriods(), domain.DefaultSlotStepMinutes)
	if err != nil {
		panic(fmt.Sprintf("availability: default grid: %v", err))
	}
	return Policy{
		ExcludedWeekdays: []time.Weekday{time.Saturday, time.Sunday},
		SlotGrid:         grid,
	}
}

// BuildSlotGrid генерирует сетку слотов по периодам работы.
// В каждом периоде слоты идут с начала с шагом stepMinutes, слот не выходит за время закрытия.
func BuildSlotGrid(periods []Period, stepMinutes int) ([]types.TimeString, error) {
	if stepMinutes < domain.MinSlotStepMinutes || stepMinutes > domain.MaxSlotStepMinutes {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidStep, stepMinutes)
	}

	grid := make([]types.TimeString, 0)
	var prevClose types.TimeString

	for _, p := range periods {
		if err := p.Open.Validate(); err != nil {
			return nil, fmt.Errorf("%w: open: %v", ErrInvalidPeriod, err)
		}
		if err := p.Close.Validate(); err != nil {
			return nil, fmt.Errorf("%w: close: %v", ErrInvalidPeriod, err)
		}
		if !p.Open.IsBefore(p.Close) {
			return nil, fmt.Errorf("%w: %s-%s", ErrInvalidPeriod, p.Open, p.Close)
		}
		// Периоды должны идти по порядку и не пересекаться, иначе сетка потеряет упорядоченность
		if !prevClose.IsZero() && p.Open.IsBefore(prevClose) {
			return nil, fmt.Errorf("%w: %s-%s overlaps previous period", ErrInvalidPeriod, p.Open, p.Close)
		}
		prevClose = p.Close

		current := p.Open
		for current.IsBefore(p.Close) {
			slotEnd, err := current.AddMinutes(stepMinutes)
			if err != nil || slotEnd.IsAfter(p.Close) {
				break
			}
			grid = append(grid, current)
			current = slotEnd
		}
	}

	return grid, nil
}

func (p *Policy) isExcludedWeekday(day time.Weekday) bool {
	for _, excluded := range p.ExcludedWeekdays {
		if excluded == day {
			return true
		}
	}
	return false
}

func (p *Policy) isBlackout(date time.Time) bool {
	for _, blackout := range p.BlackoutDates {
		if domain.IsSameDay(blackout, date) {
			return true
		}
	}
	return false
}
