package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingWizard/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BookingWizard/pkg/ptr"
	"github.com/m04kA/SMC-BookingWizard/pkg/types"
)

const table = "bookings"

var bookingColumns = []string{
	"id",
	"reference",
	"service_id",
	"service_name",
	"service_price",
	"duration_minutes",
	"category",
	"booking_date",
	"start_time",
	"status",
	"first_name",
	"last_name",
	"email",
	"phone",
	"notes",
	"accept_marketing",
	"create_account",
	"submitted_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ReservedSlots возвращает занятые слоты на дату по активным бронированиям.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельная финализация
// не заняла тот же слот.
func (r *Repository) ReservedSlots(ctx context.Context, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("start_time").
		From(table).
		Where(squirrel.Eq{"booking_date": domain.DateOnly(date)}).
		Where(squirrel.Eq{"status": domain.ActiveStatuses}).
		OrderBy("start_time")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReservedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ReservedSlots - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]types.TimeString, 0)
	for rows.Next() {
		var slot types.TimeString
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("%w: ReservedSlots - scan: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ReservedSlots - rows iteration: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Create сохраняет подтвержденное бронирование.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.ConfirmedBooking) (*domain.ConfirmedBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(bookingColumns[1:]...).
		Values(
			booking.Reference,
			booking.Service.ID,
			booking.Service.Name,
			booking.Service.Price,
			booking.Service.DurationMinutes,
			booking.Service.Category,
			domain.DateOnly(booking.Date),
			booking.Time,
			booking.Status,
			booking.Client.FirstName,
			booking.Client.LastName,
			booking.Client.Email,
			booking.Client.Phone,
			nullableNotes(booking.Client.Notes),
			booking.Client.AcceptMarketing,
			booking.Client.CreateAccount,
			booking.SubmittedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *booking
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&created.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return &created, nil
}

// GetByReference получает бронирование по идентификатору, выданному клиенту
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.ConfirmedBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(table).
		Where(squirrel.Eq{"reference": reference}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - build select query: %v", ErrBuildQuery, err)
	}

	var (
		booking domain.ConfirmedBooking
		notes   *string
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.Reference,
		&booking.Service.ID,
		&booking.Service.Name,
		&booking.Service.Price,
		&booking.Service.DurationMinutes,
		&booking.Service.Category,
		&booking.Date,
		&booking.Time,
		&booking.Status,
		&booking.Client.FirstName,
		&booking.Client.LastName,
		&booking.Client.Email,
		&booking.Client.Phone,
		&notes,
		&booking.Client.AcceptMarketing,
		&booking.Client.CreateAccount,
		&booking.SubmittedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - scan: %v", ErrScanRow, err)
	}

	booking.Client.Notes = ptr.Value(notes)
	// Запись в хранилище означает, что условия были приняты
	booking.Client.AgreeTerms = true

	return &booking, nil
}

// Cancel переводит активное бронирование в статус отмены.
// Частичный уникальный индекс учитывает только активные статусы, слот освобождается.
func (r *Repository) Cancel(ctx context.Context, reference string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelledByUser).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reference": reference, "status": domain.ActiveStatuses}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// nullableNotes пустые пожелания хранятся как NULL
func nullableNotes(notes string) *string {
	if notes == "" {
		return nil
	}
	return ptr.Ptr(notes)
}
