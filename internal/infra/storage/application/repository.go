package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/pkg/dbmetrics"
	"github.com/m04kA/companion-booking/pkg/psqlbuilder"
)

const pqUniqueViolation = "23505"

var applicationColumns = []string{
	"id",
	"account_id",
	"legal_name",
	"date_of_birth",
	"phone",
	"city",
	"bio",
	"document_uris",
	"photo_uris",
	"services_offered",
	"languages",
	"hourly_rate",
	"status",
	"reviewed_by",
	"rejection_reason",
	"submitted_at",
	"reviewed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий заявок компаньонов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую заявку
// Частичный уникальный индекс не дает завести вторую pending заявку
func (r *Repository) Create(ctx context.Context, app *domain.CompanionApplication) (*domain.CompanionApplication, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("companion_applications").
		Columns(
			"account_id",
			"legal_name",
			"date_of_birth",
			"phone",
			"city",
			"bio",
			"document_uris",
			"photo_uris",
			"services_offered",
			"languages",
			"hourly_rate",
			"status",
			"submitted_at",
		).
		Values(
			app.AccountID,
			app.LegalName,
			app.DateOfBirth.Format(domain.DateFormat),
			app.Phone,
			app.City,
			app.Bio,
			textArray(app.DocumentURIs),
			textArray(app.PhotoURIs),
			textArray(app.ServicesOffered.Strings()),
			textArray(app.Languages),
			app.HourlyRate,
			app.Status,
			app.SubmittedAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&app.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, domain.ErrAlreadyPending
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	app.CreatedAt = createdAt.Time
	app.UpdatedAt = updatedAt.Time
	return app, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CompanionApplication, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id}, false)
}

// GetByIDForUpdate получает заявку и блокирует ее до конца транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.CompanionApplication, error) {
	return r.getOne(ctx, "GetByIDForUpdate", squirrel.Eq{"id": id}, dbmetrics.IsInTransaction(ctx))
}

// GetLatestByAccount возвращает последнюю заявку аккаунта
func (r *Repository) GetLatestByAccount(ctx context.Context, accountID int64) (*domain.CompanionApplication, error) {
	return r.getOne(ctx, "GetLatestByAccount", squirrel.Eq{"account_id": accountID}, false)
}

// GetApprovedByAccount возвращает одобренную заявку (зарегистрированные услуги и ставка компаньона)
func (r *Repository) GetApprovedByAccount(ctx context.Context, accountID int64) (*domain.CompanionApplication, error) {
	return r.getOne(ctx, "GetApprovedByAccount",
		squirrel.Eq{"account_id": accountID, "status": domain.ReviewApproved}, false)
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq, forUpdate bool) (*domain.CompanionApplication, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(applicationColumns...).
		From("companion_applications").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(1)
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	app, err := scanApplication(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan application: %w", ErrScanRow, op, err)
	}

	return app, nil
}

// UpdateReview сохраняет решение проверяющего
func (r *Repository) UpdateReview(ctx context.Context, app *domain.CompanionApplication) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("companion_applications").
		Set("status", app.Status).
		Set("reviewed_by", app.ReviewedBy).
		Set("rejection_reason", app.RejectionReason).
		Set("reviewed_at", app.ReviewedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": app.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateReview - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateReview - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateReview - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrApplicationNotFound
	}

	return nil
}

// ListByStatus очередь для проверяющих
func (r *Repository) ListByStatus(ctx context.Context, status domain.ReviewStatus) ([]*domain.CompanionApplication, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(applicationColumns...).
		From("companion_applications").
		Where(squirrel.Eq{"status": status}).
		OrderBy("submitted_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	out := make([]*domain.CompanionApplication, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByStatus - scan row: %w", ErrScanRow, err)
		}
		out = append(out, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - rows error: %w", ErrScanRow, err)
	}

	return out, nil
}

// ListApprovedCompanions возвращает каталог одобренных компаньонов
// Если service задан, остаются только компаньоны, предлагающие эту услугу
func (r *Repository) ListApprovedCompanions(ctx context.Context, service *domain.ServiceTag) ([]*domain.CompanionProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"ca.account_id",
		"a.display_name",
		"ca.city",
		"ca.bio",
		"ca.services_offered",
		"ca.languages",
		"ca.hourly_rate",
		"ca.photo_uris",
	).
		From("companion_applications ca").
		Join("accounts a ON a.id = ca.account_id").
		Where(squirrel.Eq{"ca.status": domain.ReviewApproved, "a.deleted_at": nil}).
		Where("'companion' = ANY(a.roles)").
		OrderBy("a.display_name ASC", "ca.account_id ASC")

	if service != nil {
		selectBuilder = selectBuilder.Where("? = ANY(ca.services_offered)", string(*service))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListApprovedCompanions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListApprovedCompanions - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	out := make([]*domain.CompanionProfile, 0)
	for rows.Next() {
		var p domain.CompanionProfile
		var services, languages, photos pq.StringArray
		if err := rows.Scan(
			&p.AccountID,
			&p.DisplayName,
			&p.City,
			&p.Bio,
			&services,
			&languages,
			&p.HourlyRate,
			&photos,
		); err != nil {
			return nil, fmt.Errorf("%w: ListApprovedCompanions - scan row: %w", ErrScanRow, err)
		}
		p.ServicesOffered = domain.NewServiceTags(services)
		p.Languages = languages
		p.PhotoURIs = photos
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListApprovedCompanions - rows error: %w", ErrScanRow, err)
	}

	return out, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApplication(row rowScanner) (*domain.CompanionApplication, error) {
	var app domain.CompanionApplication
	var documents, photos, services, languages pq.StringArray
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&app.ID,
		&app.AccountID,
		&app.LegalName,
		&app.DateOfBirth,
		&app.Phone,
		&app.City,
		&app.Bio,
		&documents,
		&photos,
		&services,
		&languages,
		&app.HourlyRate,
		&app.Status,
		&app.ReviewedBy,
		&app.RejectionReason,
		&app.SubmittedAt,
		&app.ReviewedAt,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	app.DocumentURIs = documents
	app.PhotoURIs = photos
	app.ServicesOffered = domain.NewServiceTags(services)
	app.Languages = languages
	app.CreatedAt = createdAt.Time
	app.UpdatedAt = updatedAt.Time
	return &app, nil
}

// textArray не дает записать NULL в NOT NULL колонку text[]
func textArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}
