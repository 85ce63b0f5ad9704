package finalize_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// UseCase финализирует черновик мастера в подтвержденное бронирование
type UseCase struct {
	bookingRepo  BookingRepository
	policy       AvailabilityPolicy
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	delay        time.Duration
}

// NewUseCase создает новый экземпляр use case.
// delay - искусственная задержка перед записью, 0 - без задержки.
func NewUseCase(
	bookingRepo BookingRepository,
	policy AvailabilityPolicy,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
	delay time.Duration,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		policy:       policy,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
		delay:        delay,
	}
}

// Finalize перепроверяет дату и слот в сериализуемой транзакции и сохраняет бронирование
func (uc *UseCase) Finalize(ctx context.Context, draft domain.BookingDraft) (*domain.ConfirmedBooking, error) {
	if !draft.IsComplete() {
		uc.logger.Warn("Finalize: incomplete draft")
		return nil, ErrIncompleteDraft
	}

	date := domain.DateOnly(*draft.Date)
	slot := *draft.Time

	uc.logger.Info("Finalize: service id=%d, date=%s, time=%s, client=%s",
		draft.Service.ID, date.Format(domain.DateFormat), slot, draft.Client.Email)

	if err := uc.wait(ctx); err != nil {
		uc.logger.Warn("Finalize: cancelled before persisting: %v", err)
		return nil, err
	}

	if !uc.policy.IsDateAvailable(date) {
		uc.logger.Warn("Finalize: date %s is not available", date.Format(domain.DateFormat))
		return nil, ErrDateUnavailable
	}

	var result *domain.ConfirmedBooking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Занятые слоты читаются с блокировкой (FOR UPDATE)
		reserved, err := uc.bookingRepo.ReservedSlots(txCtx, date)
		if err != nil {
			uc.logger.Error("Finalize: failed to get reserved slots: %v", err)
			return fmt.Errorf("%w: failed to get reserved slots: %v", ErrInternal, err)
		}

		if !slotOnGrid(uc.policy.SlotGrid(), slot) {
			uc.logger.Warn("Finalize: slot %s is not on the grid", slot)
			return ErrSlotNotAvailable
		}
		for _, taken := range reserved {
			if taken == slot {
				uc.logger.Warn("Finalize: slot %s on %s already taken", slot, date.Format(domain.DateFormat))
				return ErrSlotNotAvailable
			}
		}

		// Мастер мог уйти с шага, пока шла проверка: не записываем бронирование, которое никто не ждет
		if err := txCtx.Err(); err != nil {
			uc.logger.Warn("Finalize: cancelled before insert: %v", err)
			return err
		}

		booking := &domain.ConfirmedBooking{
			Reference:   uuid.New().String(),
			Service:     *draft.Service,
			Date:        date,
			Time:        slot,
			Client:      *draft.Client,
			Status:      domain.StatusConfirmed,
			SubmittedAt: uc.timeProvider.Now(),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("Finalize: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Finalize: booking id=%d reference=%s created", result.ID, result.Reference)
	return result, nil
}

// Cancel отменяет уже записанное бронирование, результат финализации которого отброшен
func (uc *UseCase) Cancel(ctx context.Context, reference string) error {
	if err := uc.bookingRepo.Cancel(ctx, reference); err != nil {
		uc.logger.Error("Cancel: failed to cancel booking reference=%s: %v", reference, err)
		return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}

	uc.logger.Info("Cancel: booking reference=%s cancelled", reference)
	return nil
}

func (uc *UseCase) wait(ctx context.Context) error {
	if uc.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(uc.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
