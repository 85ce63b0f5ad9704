package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

// Reservation заранее занятые слоты на дату (демо-данные из конфига)
type Reservation struct {
	Date  time.Time
	Slots []types.TimeString
}

// Store хранилище бронирований в памяти процесса.
// Используется, когда база данных отключена.
type Store struct {
	mu       sync.RWMutex
	seeded   map[string][]types.TimeString
	bookings []*domain.ConfirmedBooking
	nextID   int64
}

// NewStore создает хранилище с предзанятыми слотами
func NewStore(seed []Reservation) *Store {
	s := &Store{
		seeded: make(map[string][]types.TimeString, len(seed)),
		nextID: 1,
	}
	for _, r := range seed {
		key := dateKey(r.Date)
		s.seeded[key] = append(s.seeded[key], r.Slots...)
	}
	return s
}

// ReservedSlots возвращает занятые слоты на дату: предзанятые и активные бронирования
func (s *Store) ReservedSlots(_ context.Context, date time.Time) ([]types.TimeString, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.reservedLocked(dateKey(date)), nil
}

// Create сохраняет бронирование и присваивает ему ID
func (s *Store) Create(_ context.Context, booking *domain.ConfirmedBooking) (*domain.ConfirmedBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dateKey(booking.Date)
	for _, slot := range s.reservedLocked(key) {
		if slot == booking.Time {
			return nil, fmt.Errorf("%w: %s %s", ErrSlotTaken, key, booking.Time)
		}
	}

	created := *booking
	created.ID = s.nextID
	s.nextID++
	s.bookings = append(s.bookings, &created)

	out := created
	return &out, nil
}

// GetByReference получает бронирование по идентификатору, выданному клиенту
func (s *Store) GetByReference(_ context.Context, reference string) (*domain.ConfirmedBooking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.Reference == reference {
			out := *b
			return &out, nil
		}
	}
	return nil, ErrBookingNotFound
}

// Cancel переводит активное бронирование в статус отмены, слот освобождается
func (s *Store) Cancel(_ context.Context, reference string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.Reference == reference && isActive(b.Status) {
			b.Status = domain.StatusCancelledByUser
			return nil
		}
	}
	return ErrBookingNotFound
}

func (s *Store) reservedLocked(key string) []types.TimeString {
	slots := make([]types.TimeString, 0, len(s.seeded[key]))
	slots = append(slots, s.seeded[key]...)

	for _, b := range s.bookings {
		if dateKey(b.Date) == key && isActive(b.Status) {
			slots = append(slots, b.Time)
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].IsBefore(slots[j]) })
	return slots
}

func isActive(status domain.BookingStatus) bool {
	for _, s := range domain.ActiveStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func dateKey(date time.Time) string {
	return date.Format(domain.DateFormat)
}
