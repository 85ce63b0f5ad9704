package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	catalogClient "github.com/m04kA/SMC-BookingWizard/internal/integrations/catalog"
	"github.com/m04kA/SMC-BookingWizard/internal/usecase/booking_wizard"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// Service реестр сессий мастера бронирования.
// Каждая сессия браузера владеет своим мастером, сессии не видят друг друга.
type Service struct {
	catalog      Catalog
	availability booking_wizard.AvailabilityEngine
	finalizer    booking_wizard.Finalizer
	recorder     booking_wizard.Recorder
	gauge        SessionGauge
	timeProvider TimeProvider
	logger       Logger
	cfg          Config

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	catalog Catalog,
	availability booking_wizard.AvailabilityEngine,
	finalizer booking_wizard.Finalizer,
	recorder booking_wizard.Recorder,
	gauge SessionGauge,
	timeProvider TimeProvider,
	logger Logger,
	cfg Config,
) *Service {
	if gauge == nil {
		gauge = nopGauge{}
	}
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Service{
		catalog:      catalog,
		availability: availability,
		finalizer:    finalizer,
		recorder:     recorder,
		gauge:        gauge,
		timeProvider: timeProvider,
		logger:       logger,
		cfg:          cfg,
		sessions:     make(map[string]*session),
	}
}

// Start создает сессию с новым мастером на первом шаге
func (s *Service) Start() *Result {
	id := uuid.New().String()
	wizard := booking_wizard.NewWizard(id, s.availability, s.finalizer, s.recorder, s.logger, s.cfg.FinalizeTimeout)

	s.mu.Lock()
	s.sessions[id] = &session{wizard: wizard, lastSeen: s.timeProvider.Now()}
	count := len(s.sessions)
	s.mu.Unlock()

	s.gauge.SetActiveSessions(count)
	s.logger.Info("Start: session %s started, %d active", id, count)

	return &Result{SessionID: id, Applied: true, State: wizard.Snapshot()}
}

// State возвращает текущее состояние мастера сессии
func (s *Service) State(id string) (*Result, error) {
	wizard, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return &Result{SessionID: id, Applied: true, State: wizard.Snapshot()}, nil
}

// SelectService выбирает услугу каталога по ID.
// Вне первого шага каталог не запрашивается: мастер отклоняет намерение сам.
func (s *Service) SelectService(ctx context.Context, id string, serviceID int64) (*Result, error) {
	wizard, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if wizard.Snapshot().Step != domain.StepSelectService {
		applied, err := wizard.SelectService(ctx, nil)
		return s.result(id, wizard, applied, err)
	}

	service, err := s.catalog.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			s.logger.Warn("SelectService: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("SelectService: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	applied, err := wizard.SelectService(ctx, service)
	return s.result(id, wizard, applied, err)
}

// SelectDate выбирает дату
func (s *Service) SelectDate(ctx context.Context, id string, date time.Time) (*Result, error) {
	wizard, err := s.get(id)
	if err != nil {
		return nil, err
	}

	applied, err := wizard.SelectDate(ctx, date)
	return s.result(id, wizard, applied, err)
}

// SelectTime выбирает слот
func (s *Service) SelectTime(ctx context.Context, id string, slot types.TimeString) (*Result, error) {
	wizard, err := s.get(id)
	if err != nil {
		return nil, err
	}

	applied, err := wizard.SelectTime(ctx, slot)
	return s.result(id, wizard, applied, err)
}

// SubmitDetails отправляет данные клиента.
// Неудачная финализация не считается ошибкой запроса: она отражается в State.Errors.General.
func (s *Service) SubmitDetails(ctx context.Context, id string, details domain.ClientDetails) (*Result, error) {
	wizard, err := s.get(id)
	if err != nil {
		return nil, err
	}

	applied, err := wizard.SubmitDetails(ctx, details)
	switch {
	case err == nil:
	case errors.Is(err, booking_wizard.ErrSubmissionInFlight):
		return nil, ErrSubmissionInFlight
	case errors.Is(err, booking_wizard.ErrFinalizationDiscarded):
		return nil, ErrSubmissionDiscarded
	case errors.Is(err, booking_wizard.ErrFinalizationFailed):
		s.logger.Warn("SubmitDetails: session %s: %v", id, err)
		err = nil
	}
	return s.result(id, wizard, applied, err)
}

// GoBack возвращает мастер на предыдущий шаг
func (s *Service) GoBack(id string) (*Result, error) {
	wizard, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return s.result(id, wizard, wizard.GoBack(), nil)
}

// StartNewBooking начинает новое бронирование после подтверждения
func (s *Service) StartNewBooking(id string) (*Result, error) {
	wizard, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return s.result(id, wizard, wizard.StartNewBooking(), nil)
}

// ClearFieldError сбрасывает ошибку поля формы
func (s *Service) ClearFieldError(id string, field string) (*Result, error) {
	wizard, err := s.get(id)
	if err != nil {
		return nil, err
	}

	clientField, ok := domain.ParseClientField(field)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	return s.result(id, wizard, wizard.ClearFieldError(clientField), nil)
}

// Confirmed возвращает подтвержденное бронирование сессии
func (s *Service) Confirmed(id string) (*domain.ConfirmedBooking, error) {
	wizard, err := s.get(id)
	if err != nil {
		return nil, err
	}

	booking, ok := wizard.Confirmed()
	if !ok {
		return nil, ErrNotConfirmed
	}
	return booking, nil
}

// Delete завершает сессию
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	if _, ok := s.sessions[id]; !ok {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	count := len(s.sessions)
	s.mu.Unlock()

	s.gauge.SetActiveSessions(count)
	s.logger.Info("Delete: session %s closed", id)
	return nil
}

// Count возвращает число живых сессий
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// SweepExpired удаляет сессии, неактивные дольше TTL.
// Сессии с финализацией в полете не трогаются.
func (s *Service) SweepExpired(now time.Time) int {
	if s.cfg.TTL <= 0 {
		return 0
	}

	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) <= s.cfg.TTL {
			continue
		}
		if sess.wizard.Snapshot().Submitting {
			continue
		}
		delete(s.sessions, id)
		removed++
	}
	count := len(s.sessions)
	s.mu.Unlock()

	if removed > 0 {
		s.gauge.SetActiveSessions(count)
		s.logger.Info("SweepExpired: removed %d idle sessions, %d active", removed, count)
	}
	return removed
}

// Run периодически удаляет истекшие сессии до отмены контекста
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepExpired(s.timeProvider.Now())
		}
	}
}

func (s *Service) get(id string) (*booking_wizard.Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = s.timeProvider.Now()
	return sess.wizard, nil
}

func (s *Service) result(id string, wizard *booking_wizard.Wizard, applied bool, err error) (*Result, error) {
	if err != nil {
		s.logger.Error("session %s: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return &Result{SessionID: id, Applied: applied, State: wizard.Snapshot()}, nil
}
