package verification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/pkg/dbmetrics"
	"github.com/m04kA/companion-booking/pkg/psqlbuilder"
)

var verificationColumns = []string{
	"account_id",
	"address_line1",
	"address_line2",
	"city",
	"state",
	"postal_code",
	"country",
	"government_id_type",
	"government_id_number_hash",
	"government_id_document_uri",
	"status",
	"reviewed_by",
	"rejection_reason",
	"submitted_at",
	"reviewed_at",
	"created_at",
	"updated_at",
}

// submissionColumns перезаписываются при повторной отправке
var submissionColumns = []string{
	"address_line1",
	"address_line2",
	"city",
	"state",
	"postal_code",
	"country",
	"government_id_type",
	"government_id_number_hash",
	"government_id_document_uri",
	"status",
	"reviewed_by",
	"rejection_reason",
	"submitted_at",
	"reviewed_at",
}

// Repository репозиторий верификаций клиентов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает верификацию клиента
func (r *Repository) Get(ctx context.Context, accountID int64) (*domain.ClientVerification, error) {
	return r.get(ctx, accountID, false)
}

// GetForUpdate блокирует строку верификации до конца транзакции
func (r *Repository) GetForUpdate(ctx context.Context, accountID int64) (*domain.ClientVerification, error) {
	return r.get(ctx, accountID, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, accountID int64, forUpdate bool) (*domain.ClientVerification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(verificationColumns...).
		From("client_verifications").
		Where(squirrel.Eq{"account_id": accountID})
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	v, err := scanVerification(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVerificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan verification: %w", ErrScanRow, err)
	}

	return v, nil
}

// Save создает или перезаписывает отправленную верификацию
func (r *Repository) Save(ctx context.Context, v *domain.ClientVerification) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updates := make([]string, 0, len(submissionColumns)+1)
	for _, col := range submissionColumns {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	updates = append(updates, "updated_at = NOW()")

	query, args, err := psqlbuilder.Insert("client_verifications").
		Columns(append([]string{"account_id"}, submissionColumns...)...).
		Values(
			v.AccountID,
			v.Address.Line1,
			v.Address.Line2,
			v.Address.City,
			v.Address.State,
			v.Address.PostalCode,
			v.Address.Country,
			v.GovernmentIDType,
			v.GovernmentIDNumberHash,
			v.GovernmentIDDocumentURI,
			v.Status,
			v.ReviewedBy,
			v.RejectionReason,
			v.SubmittedAt,
			v.ReviewedAt,
		).
		Suffix("ON CONFLICT (account_id) DO UPDATE SET " + strings.Join(updates, ", ") + " RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %w", ErrExecQuery, err)
	}

	v.CreatedAt = createdAt.Time
	v.UpdatedAt = updatedAt.Time
	return nil
}

// UpdateReview сохраняет решение проверяющего
func (r *Repository) UpdateReview(ctx context.Context, v *domain.ClientVerification) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("client_verifications").
		Set("status", v.Status).
		Set("reviewed_by", v.ReviewedBy).
		Set("rejection_reason", v.RejectionReason).
		Set("reviewed_at", v.ReviewedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"account_id": v.AccountID}).
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
		return ErrVerificationNotFound
	}

	return nil
}

// ListByStatus очередь для проверяющих, старые заявки первыми
func (r *Repository) ListByStatus(ctx context.Context, status domain.ReviewStatus) ([]*domain.ClientVerification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(verificationColumns...).
		From("client_verifications").
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

	out := make([]*domain.ClientVerification, 0)
	for rows.Next() {
		v, err := scanVerification(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByStatus - scan row: %w", ErrScanRow, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - rows error: %w", ErrScanRow, err)
	}

	return out, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVerification(row rowScanner) (*domain.ClientVerification, error) {
	var v domain.ClientVerification
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(
		&v.AccountID,
		&v.Address.Line1,
		&v.Address.Line2,
		&v.Address.City,
		&v.Address.State,
		&v.Address.PostalCode,
		&v.Address.Country,
		&v.GovernmentIDType,
		&v.GovernmentIDNumberHash,
		&v.GovernmentIDDocumentURI,
		&v.Status,
		&v.ReviewedBy,
		&v.RejectionReason,
		&v.SubmittedAt,
		&v.ReviewedAt,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	v.CreatedAt = createdAt.Time
	v.UpdatedAt = updatedAt.Time
	return &v, nil
}
