package booking_wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// Wizard конечный автомат мастера бронирования:
// выбор услуги -> выбор даты и времени -> данные клиента -> подтверждение.
//
// Каждый переход проверяет свои условия сам, независимо от того, что разрешил интерфейс.
// Переход с ложным условием отклоняется без изменения состояния.
type Wizard struct {
	id              string
	availability    AvailabilityEngine
	finalizer       Finalizer
	recorder        Recorder
	logger          Logger
	finalizeTimeout time.Duration

	mu            sync.Mutex
	step          domain.Step
	draft         domain.BookingDraft
	slots         []types.TimeString
	dateAvailable bool
	errors        domain.ErrorMap
	confirmed     *domain.ConfirmedBooking

	// Финализация в полете: не больше одной на черновик.
	// generation увеличивается при уходе с шага, поздний результат с устаревшим поколением отбрасывается.
	submitting     bool
	generation     uint64
	cancelInFlight context.CancelFunc
}

// NewWizard создает мастер на первом шаге с пустым черновиком.
// recorder может быть nil, finalizeTimeout = 0 - без таймаута.
func NewWizard(
	id string,
	availability AvailabilityEngine,
	finalizer Finalizer,
	recorder Recorder,
	logger Logger,
	finalizeTimeout time.Duration,
) *Wizard {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Wizard{
		id:              id,
		availability:    availability,
		finalizer:       finalizer,
		recorder:        recorder,
		logger:          logger,
		finalizeTimeout: finalizeTimeout,
		step:            domain.StepSelectService,
	}
}

// ID возвращает идентификатор сессии мастера
func (w *Wizard) ID() string {
	return w.id
}

// SelectService выбирает услугу и переходит к выбору даты.
// Если при возврате назад дата уже была выбрана, она перепроверяется:
// недоступная дата сбрасывается вместе со временем, занятое время сбрасывается.
func (w *Wizard) SelectService(ctx context.Context, service *domain.Service) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != domain.StepSelectService || service == nil {
		return w.refuse(IntentSelectService), nil
	}

	if w.draft.Date != nil {
		if err := w.revalidateDateLocked(ctx); err != nil {
			return false, err
		}
	}

	svc := *service
	w.draft.Service = &svc
	w.step = domain.StepSelectDateTime

	w.logger.Info("Wizard[%s]: service id=%d (%s) selected", w.id, svc.ID, svc.Name)
	return w.apply(IntentSelectService), nil
}

// SelectDate выбирает дату и пересчитывает свободные слоты.
// Шаг не меняется: дата без свободных слотов допустима, но дальше мастер не пустит.
// Смена даты сбрасывает выбранное время, данные клиента сохраняются.
func (w *Wizard) SelectDate(ctx context.Context, date time.Time) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != domain.StepSelectDateTime || !w.availability.IsDateAvailable(date) {
		return w.refuse(IntentSelectDate), nil
	}

	date = domain.DateOnly(date)
	slots, err := w.availability.AvailableSlotsFor(ctx, date)
	if err != nil {
		w.logger.Error("Wizard[%s]: failed to get slots for %s: %v", w.id, date.Format(domain.DateFormat), err)
		w.recorder.ObserveTransition(IntentSelectDate, resultFailed)
		return false, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	if w.draft.Date == nil || !domain.IsSameDay(*w.draft.Date, date) {
		w.draft.Time = nil
	}
	w.draft.Date = &date
	w.slots = slots
	w.dateAvailable = true

	w.logger.Info("Wizard[%s]: date %s selected, %d slots free", w.id, date.Format(domain.DateFormat), len(slots))
	return w.apply(IntentSelectDate), nil
}

// SelectTime выбирает слот и переходит к вводу данных клиента.
// Слот проверяется по свежему списку свободных слотов, а не по снимку.
func (w *Wizard) SelectTime(ctx context.Context, slot types.TimeString) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != domain.StepSelectDateTime || w.draft.Date == nil {
		return w.refuse(IntentSelectTime), nil
	}

	slots, err := w.availability.AvailableSlotsFor(ctx, *w.draft.Date)
	if err != nil {
		w.logger.Error("Wizard[%s]: failed to get slots for %s: %v", w.id, w.draft.Date.Format(domain.DateFormat), err)
		w.recorder.ObserveTransition(IntentSelectTime, resultFailed)
		return false, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}
	w.slots = slots

	if !containsSlot(slots, slot) {
		w.logger.Warn("Wizard[%s]: slot %s is not available on %s", w.id, slot, w.draft.Date.Format(domain.DateFormat))
		return w.refuse(IntentSelectTime), nil
	}

	w.draft.Time = &slot
	w.step = domain.StepEnterDetails

	w.logger.Info("Wizard[%s]: time %s selected", w.id, slot)
	return w.apply(IntentSelectTime), nil
}

// SubmitDetails проверяет данные клиента и финализирует бронирование.
//
// Ошибки полей попадают в State.Errors, переход при этом не выполняется.
// Повторная отправка во время финализации возвращает ErrSubmissionInFlight.
// Если пользователь ушел с шага, пока финализация шла, результат отбрасывается (ErrFinalizationDiscarded).
// Неудачная финализация оставляет мастер на шаге ввода данных с сохраненным черновиком.
func (w *Wizard) SubmitDetails(ctx context.Context, details domain.ClientDetails) (bool, error) {
	w.mu.Lock()

	if w.step != domain.StepEnterDetails || w.draft.Service == nil || w.draft.Date == nil || w.draft.Time == nil {
		w.mu.Unlock()
		return w.refuse(IntentSubmitDetails), nil
	}

	if w.submitting {
		w.mu.Unlock()
		w.logger.Warn("Wizard[%s]: duplicate submission ignored", w.id)
		w.recorder.ObserveTransition(IntentSubmitDetails, resultRefused)
		return false, ErrSubmissionInFlight
	}

	details = details.Normalized()
	if errs := details.Validate(); !errs.IsEmpty() {
		w.errors = errs
		w.mu.Unlock()
		w.logger.Info("Wizard[%s]: client details rejected by validation", w.id)
		w.recorder.ObserveTransition(IntentSubmitDetails, resultInvalid)
		return false, nil
	}

	w.draft.Client = &details
	w.errors = domain.ErrorMap{}
	w.submitting = true
	generation := w.generation
	draft := w.draft.Clone()

	var (
		finalizeCtx context.Context
		cancel      context.CancelFunc
	)
	if w.finalizeTimeout > 0 {
		finalizeCtx, cancel = context.WithTimeout(ctx, w.finalizeTimeout)
	} else {
		finalizeCtx, cancel = context.WithCancel(ctx)
	}
	w.cancelInFlight = cancel
	w.mu.Unlock()

	booking, err := w.finalizer.Finalize(finalizeCtx, draft)
	cancel()

	w.mu.Lock()
	if generation != w.generation {
		w.mu.Unlock()
		w.logger.Warn("Wizard[%s]: finalization result discarded, wizard moved on", w.id)
		w.recorder.ObserveTransition(IntentSubmitDetails, resultDiscarded)
		if booking != nil {
			w.revoke(ctx, booking)
		}
		return false, ErrFinalizationDiscarded
	}
	defer w.mu.Unlock()

	w.submitting = false
	w.cancelInFlight = nil

	if err != nil {
		w.errors.General = MsgFinalizationFailed
		w.logger.Error("Wizard[%s]: finalization failed: %v", w.id, err)
		w.recorder.ObserveTransition(IntentSubmitDetails, resultFailed)
		return false, fmt.Errorf("%w: %v", ErrFinalizationFailed, err)
	}

	w.confirmed = booking
	w.step = domain.StepConfirmed

	w.logger.Info("Wizard[%s]: booking %s confirmed", w.id, booking.Reference)
	w.recorder.ObserveConfirmed()
	return w.apply(IntentSubmitDetails), nil
}

// GoBack возвращает на предыдущий шаг. Поля черновика не очищаются.
// Финализация в полете отменяется, её результат будет отброшен.
func (w *Wizard) GoBack() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != domain.StepSelectDateTime && w.step != domain.StepEnterDetails {
		return w.refuse(IntentGoBack)
	}

	w.abandonInFlightLocked()
	w.step--

	w.logger.Info("Wizard[%s]: back to step %s", w.id, w.step)
	return w.apply(IntentGoBack)
}

// StartNewBooking сбрасывает черновик после подтверждения
func (w *Wizard) StartNewBooking() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != domain.StepConfirmed {
		return w.refuse(IntentStartNewBooking)
	}

	w.abandonInFlightLocked()
	w.step = domain.StepSelectService
	w.draft = domain.BookingDraft{}
	w.slots = nil
	w.dateAvailable = false
	w.errors = domain.ErrorMap{}
	w.confirmed = nil

	w.logger.Info("Wizard[%s]: new booking started", w.id)
	return w.apply(IntentStartNewBooking)
}

// ClearFieldError сбрасывает ошибку поля, которое пользователь начал редактировать
func (w *Wizard) ClearFieldError(field domain.ClientField) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.errors.Clear(field)
}

// Snapshot возвращает копию текущего состояния
func (w *Wizard) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	state := State{
		Step:          w.step,
		Progress:      w.step.Progress(),
		Draft:         w.draft.Clone(),
		DateAvailable: w.dateAvailable,
		Errors:        w.errors,
		Submitting:    w.submitting,
	}
	if w.slots != nil {
		state.Slots = make([]types.TimeString, len(w.slots))
		copy(state.Slots, w.slots)
	}
	if w.confirmed != nil {
		confirmed := *w.confirmed
		state.Confirmed = &confirmed
	}
	return state
}

// Confirmed возвращает подтвержденное бронирование, если мастер завершен
func (w *Wizard) Confirmed() (*domain.ConfirmedBooking, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.confirmed == nil {
		return nil, false
	}
	confirmed := *w.confirmed
	return &confirmed, true
}

// revalidateDateLocked перепроверяет сохраненную дату и время при повторном проходе вперед
func (w *Wizard) revalidateDateLocked(ctx context.Context) error {
	date := *w.draft.Date
	if !w.availability.IsDateAvailable(date) {
		w.logger.Info("Wizard[%s]: retained date %s is no longer available", w.id, date.Format(domain.DateFormat))
		w.draft.Date = nil
		w.draft.Time = nil
		w.slots = nil
		w.dateAvailable = false
		return nil
	}

	slots, err := w.availability.AvailableSlotsFor(ctx, date)
	if err != nil {
		w.logger.Error("Wizard[%s]: failed to refresh slots for %s: %v", w.id, date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: failed to refresh slots: %v", ErrInternal, err)
	}
	w.slots = slots
	w.dateAvailable = true

	if w.draft.Time != nil && !containsSlot(slots, *w.draft.Time) {
		w.draft.Time = nil
	}
	return nil
}

// revoke отменяет бронирование, записанное финализацией после ухода с шага.
// Контекст запроса может быть уже отменен, отмена записи от него не зависит.
func (w *Wizard) revoke(ctx context.Context, booking *domain.ConfirmedBooking) {
	if err := w.finalizer.Cancel(context.WithoutCancel(ctx), booking.Reference); err != nil {
		w.logger.Error("Wizard[%s]: failed to cancel discarded booking %s: %v", w.id, booking.Reference, err)
		return
	}
	w.logger.Info("Wizard[%s]: discarded booking %s cancelled", w.id, booking.Reference)
}

func (w *Wizard) abandonInFlightLocked() {
	w.generation++
	if w.submitting {
		w.logger.Warn("Wizard[%s]: abandoning finalization in flight", w.id)
		if w.cancelInFlight != nil {
			w.cancelInFlight()
		}
		w.submitting = false
		w.cancelInFlight = nil
	}
}

func (w *Wizard) apply(intent string) bool {
	w.recorder.ObserveTransition(intent, resultApplied)
	return true
}

func (w *Wizard) refuse(intent string) bool {
	w.recorder.ObserveTransition(intent, resultRefused)
	return false
}

func containsSlot(slots []types.TimeString, slot types.TimeString) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
