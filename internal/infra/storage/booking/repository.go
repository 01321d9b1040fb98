package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/pkg/dbmetrics"
	"github.com/m04kA/companion-booking/pkg/psqlbuilder"
)

// exclusion_violation: сработал bookings_no_overlap
const pqExclusionViolation = "23P01"

var bookingColumns = []string{
	"id",
	"client_id",
	"companion_id",
	"booking_request_id",
	"booking_date",
	"start_time",
	"end_time",
	"service_type",
	"meeting_location",
	"meeting_type",
	"special_requests",
	"status",
	"payment_status",
	"hourly_rate",
	"extra_amount",
	"total_amount",
	"platform_fee",
	"companion_earnings",
	"cancelled_by",
	"cancellation_reason",
	"cancelled_at",
	"confirmed_at",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var serviceType *string
	if booking.ServiceType != nil {
		s := string(*booking.ServiceType)
		serviceType = &s
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"client_id",
			"companion_id",
			"booking_request_id",
			"booking_date",
			"start_time",
			"end_time",
			"service_type",
			"meeting_location",
			"meeting_type",
			"special_requests",
			"status",
			"payment_status",
			"hourly_rate",
			"extra_amount",
			"total_amount",
			"platform_fee",
			"companion_earnings",
		).
		Values(
			booking.ClientID,
			booking.CompanionID,
			booking.BookingRequestID,
			booking.BookingDate.Format(domain.DateFormat),
			booking.StartTime,
			booking.EndTime,
			serviceType,
			booking.MeetingLocation,
			booking.MeetingType,
			booking.SpecialRequests,
			booking.Status,
			booking.PaymentStatus,
			booking.HourlyRate,
			booking.ExtraAmount,
			booking.TotalAmount,
			booking.PlatformFee,
			booking.CompanionEarnings,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqExclusionViolation {
			return nil, fmt.Errorf("%w: %s", domain.ErrDoubleBooked, pqErr.Constraint)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование и блокирует строку до конца транзакции
// Вне транзакции ведет себя как GetByID
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Клиенту и/или компаньону
// - Периоду (StartDate, EndDate)
// - Статусу (Status)
// - Включению отмененных бронирований (IncludeCancelled)
//
// Если используется транзакция и запрошена одна дата одного компаньона,
// строки блокируются FOR UPDATE (usecase создания бронирования)
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings")

	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.CompanionID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"companion_id": *filter.CompanionID})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": filter.EndDate.Format(domain.DateFormat)})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	// Для конкретной даты сортируем по времени начала, иначе сначала новые
	if singleDate {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC", "start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate && filter.CompanionID != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBlockingByCompanionAndDate возвращает неотмененные бронирования компаньона на дату
func (r *Repository) GetBlockingByCompanionAndDate(ctx context.Context, companionID int64, date time.Time) ([]*domain.Booking, error) {
	return r.List(ctx, domain.BookingFilter{
		CompanionID: &companionID,
		StartDate:   &date,
		EndDate:     &date,
	})
}

// UpdateStatus сохраняет переход статуса
// Обновление выполняется только если в БД все еще статус from, иначе ErrStatusChanged
func (r *Repository) UpdateStatus(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var cancelledBy *string
	if booking.CancelledBy != nil {
		s := string(*booking.CancelledBy)
		cancelledBy = &s
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", booking.Status).
		Set("cancelled_by", cancelledBy).
		Set("cancellation_reason", booking.CancellationReason).
		Set("cancelled_at", booking.CancelledAt).
		Set("confirmed_at", booking.ConfirmedAt).
		Set("completed_at", booking.CompletedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID, "status": from}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrStatusChanged
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	booking.UpdatedAt = updatedAt.Time
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var serviceType, cancelledBy sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ClientID,
		&booking.CompanionID,
		&booking.BookingRequestID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&serviceType,
		&booking.MeetingLocation,
		&booking.MeetingType,
		&booking.SpecialRequests,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.HourlyRate,
		&booking.ExtraAmount,
		&booking.TotalAmount,
		&booking.PlatformFee,
		&booking.CompanionEarnings,
		&cancelledBy,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&booking.ConfirmedAt,
		&booking.CompletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if serviceType.Valid {
		tag := domain.ServiceTag(serviceType.String)
		booking.ServiceType = &tag
	}
	if cancelledBy.Valid {
		role := domain.Role(cancelledBy.String)
		booking.CancelledBy = &role
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
