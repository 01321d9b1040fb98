package bookingrequest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/pkg/dbmetrics"
	"github.com/m04kA/companion-booking/pkg/psqlbuilder"
)

var requestColumns = []string{
	"id",
	"client_id",
	"companion_id",
	"requested_date",
	"start_time",
	"end_time",
	"duration_hours",
	"service_type",
	"extra_amount",
	"meeting_location",
	"special_requests",
	"status",
	"booking_id",
	"responded_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий запросов на бронирование
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый запрос
func (r *Repository) Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_requests").
		Columns(
			"client_id",
			"companion_id",
			"requested_date",
			"start_time",
			"end_time",
			"duration_hours",
			"service_type",
			"extra_amount",
			"meeting_location",
			"special_requests",
			"status",
		).
		Values(
			req.ClientID,
			req.CompanionID,
			req.RequestedDate.Format(domain.DateFormat),
			req.StartTime,
			req.EndTime,
			req.DurationHours,
			string(req.ServiceType),
			req.ExtraAmount,
			req.MeetingLocation,
			req.SpecialRequests,
			req.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time
	return req, nil
}

// GetByID получает запрос по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate блокирует запрос до конца транзакции (accept / reject)
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("booking_requests").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %w", ErrScanRow, err)
	}

	return req, nil
}

// List возвращает запросы по фильтру, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.BookingRequestFilter) ([]*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("booking_requests").
		OrderBy("created_at DESC", "id DESC")

	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.CompanionID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"companion_id": *filter.CompanionID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
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

	out := make([]*domain.BookingRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return out, nil
}

// UpdateResponse сохраняет ответ компаньона и ссылку на созданное бронирование
func (r *Repository) UpdateResponse(ctx context.Context, req *domain.BookingRequest) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_requests").
		Set("status", req.Status).
		Set("booking_id", req.BookingID).
		Set("responded_at", req.RespondedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": req.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateResponse - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateResponse - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateResponse - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.BookingRequest, error) {
	var req domain.BookingRequest
	var serviceType string
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&req.ID,
		&req.ClientID,
		&req.CompanionID,
		&req.RequestedDate,
		&req.StartTime,
		&req.EndTime,
		&req.DurationHours,
		&serviceType,
		&req.ExtraAmount,
		&req.MeetingLocation,
		&req.SpecialRequests,
		&req.Status,
		&req.BookingID,
		&req.RespondedAt,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	req.ServiceType = domain.ServiceTag(serviceType)
	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time
	return &req, nil
}
