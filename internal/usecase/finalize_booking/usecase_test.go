package finalize_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/logger"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type fakeRepo struct {
	reserved   map[string][]types.TimeString
	created    []*domain.ConfirmedBooking
	cancelled  []string
	reserveErr error
	createErr  error
	cancelErr  error
}

func (r *fakeRepo) ReservedSlots(_ context.Context, date time.Time) ([]types.TimeString, error) {
	if r.reserveErr != nil {
		return nil, r.reserveErr
	}
	return r.reserved[date.Format(domain.DateFormat)], nil
}

func (r *fakeRepo) Create(_ context.Context, booking *domain.ConfirmedBooking) (*domain.ConfirmedBooking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	out := *booking
	out.ID = int64(len(r.created) + 1)
	r.created = append(r.created, &out)
	return &out, nil
}

func (r *fakeRepo) Cancel(_ context.Context, reference string) error {
	if r.cancelErr != nil {
		return r.cancelErr
	}
	r.cancelled = append(r.cancelled, reference)
	return nil
}

type fakePolicy struct {
	closed map[string]bool
}

func (p fakePolicy) IsDateAvailable(date time.Time) bool {
	return !p.closed[date.Format(domain.DateFormat)]
}

func (p fakePolicy) SlotGrid() []types.TimeString {
	return []types.TimeString{"09:00", "09:30", "10:00"}
}

type inlineTx struct {
	calls int
}

func (t *inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

// cancellingTx отменяет контекст после начала транзакции, до выполнения fn
type cancellingTx struct {
	cancel context.CancelFunc
}

func (t *cancellingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.cancel()
	return fn(ctx)
}

var now = time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)

func completeDraft(slot types.TimeString) domain.BookingDraft {
	date := time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC)
	return domain.BookingDraft{
		Service: &domain.Service{ID: 1, Name: "Corte Feminino", Price: 85, DurationMinutes: 90},
		Date:    &date,
		Time:    &slot,
		Client: &domain.ClientDetails{
			FirstName:  "Ana",
			LastName:   "Lima",
			Email:      "ana@x.com",
			Phone:      "(11) 99999-9999",
			AgreeTerms: true,
		},
	}
}

func newUseCase(repo *fakeRepo, policy fakePolicy, tx *inlineTx) *UseCase {
	return NewUseCase(repo, policy, tx, fixedClock{now: now}, logger.NewNop(), 0)
}

func TestFinalize_Success(t *testing.T) {
	repo := &fakeRepo{reserved: map[string][]types.TimeString{"2026-10-20": {"09:30"}}}
	tx := &inlineTx{}
	uc := newUseCase(repo, fakePolicy{}, tx)

	booking, err := uc.Finalize(context.Background(), completeDraft("09:00"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), booking.ID)
	assert.Equal(t, types.TimeString("09:00"), booking.Time)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assert.Equal(t, now, booking.SubmittedAt)
	assert.Equal(t, "ana@x.com", booking.Client.Email)
	_, parseErr := uuid.Parse(booking.Reference)
	assert.NoError(t, parseErr)
	assert.Equal(t, 1, tx.calls)
	assert.Len(t, repo.created, 1)
}

func TestFinalize_ReferencesAreUnique(t *testing.T) {
	repo := &fakeRepo{reserved: map[string][]types.TimeString{}}
	uc := newUseCase(repo, fakePolicy{}, &inlineTx{})

	first, err := uc.Finalize(context.Background(), completeDraft("09:00"))
	require.NoError(t, err)
	second, err := uc.Finalize(context.Background(), completeDraft("09:30"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Reference, second.Reference)
}

func TestFinalize_IncompleteDraft(t *testing.T) {
	repo := &fakeRepo{}
	tx := &inlineTx{}
	uc := newUseCase(repo, fakePolicy{}, tx)

	draft := completeDraft("09:00")
	draft.Client = nil

	_, err := uc.Finalize(context.Background(), draft)

	assert.ErrorIs(t, err, ErrIncompleteDraft)
	assert.Zero(t, tx.calls)
}

func TestFinalize_DateUnavailable(t *testing.T) {
	repo := &fakeRepo{}
	uc := newUseCase(repo, fakePolicy{closed: map[string]bool{"2026-10-20": true}}, &inlineTx{})

	_, err := uc.Finalize(context.Background(), completeDraft("09:00"))

	assert.ErrorIs(t, err, ErrDateUnavailable)
	assert.Empty(t, repo.created)
}

func TestFinalize_SlotTaken(t *testing.T) {
	repo := &fakeRepo{reserved: map[string][]types.TimeString{"2026-10-20": {"09:00"}}}
	uc := newUseCase(repo, fakePolicy{}, &inlineTx{})

	_, err := uc.Finalize(context.Background(), completeDraft("09:00"))

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, repo.created)
}

func TestFinalize_SlotOffGrid(t *testing.T) {
	repo := &fakeRepo{reserved: map[string][]types.TimeString{}}
	uc := newUseCase(repo, fakePolicy{}, &inlineTx{})

	_, err := uc.Finalize(context.Background(), completeDraft("12:30"))

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestFinalize_RepositoryErrors(t *testing.T) {
	tests := []struct {
		name string
		repo *fakeRepo
	}{
		{name: "reserved slots", repo: &fakeRepo{reserveErr: errors.New("connection reset")}},
		{name: "create", repo: &fakeRepo{createErr: errors.New("unique violation")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(tt.repo, fakePolicy{}, &inlineTx{})

			_, err := uc.Finalize(context.Background(), completeDraft("09:00"))

			assert.ErrorIs(t, err, ErrInternal)
		})
	}
}

func TestFinalize_CancelledDuringDelay(t *testing.T) {
	repo := &fakeRepo{reserved: map[string][]types.TimeString{}}
	tx := &inlineTx{}
	uc := NewUseCase(repo, fakePolicy{}, tx, fixedClock{now: now}, logger.NewNop(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Finalize(ctx, completeDraft("09:00"))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, tx.calls)
}

func TestFinalize_CancelledInsideTransactionSkipsInsert(t *testing.T) {
	repo := &fakeRepo{reserved: map[string][]types.TimeString{}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	uc := NewUseCase(repo, fakePolicy{}, &cancellingTx{cancel: cancel}, fixedClock{now: now}, logger.NewNop(), 0)

	_, err := uc.Finalize(ctx, completeDraft("09:00"))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, repo.created)
}

func TestCancel(t *testing.T) {
	repo := &fakeRepo{}
	uc := newUseCase(repo, fakePolicy{}, &inlineTx{})

	require.NoError(t, uc.Cancel(context.Background(), "ref-1"))
	assert.Equal(t, []string{"ref-1"}, repo.cancelled)

	repo.cancelErr = errors.New("connection reset")
	assert.ErrorIs(t, uc.Cancel(context.Background(), "ref-2"), ErrInternal)
}
