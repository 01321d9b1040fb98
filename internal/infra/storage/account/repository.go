package account

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

var accountColumns = []string{
	"id",
	"email",
	"display_name",
	"roles",
	"active_role",
	"email_verified",
	"created_at",
	"updated_at",
	"deleted_at",
}

// Repository репозиторий аккаунтов и их ролей
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает не удаленный аккаунт
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate блокирует строку аккаунта до конца транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Account, error) {
	return r.get(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) get(ctx context.Context, id int64, forUpdate bool) (*domain.Account, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(accountColumns...).
		From("accounts").
		Where(squirrel.Eq{"id": id, "deleted_at": nil})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	acc, err := scanAccount(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan account: %w", ErrScanRow, err)
	}

	return acc, nil
}

// UpdateActiveRole сохраняет активную роль
// CHECK accounts_active_role_granted не даст записать роль, которой нет в roles
func (r *Repository) UpdateActiveRole(ctx context.Context, id int64, role domain.Role) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("accounts").
		Set("active_role", string(role)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		Where("? = ANY(roles)", string(role)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateActiveRole - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdateActiveRole", query, args)
}

// AddRole добавляет роль, если она еще не выдана
func (r *Repository) AddRole(ctx context.Context, id int64, role domain.Role) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("accounts").
		Set("roles", squirrel.Expr("array_append(roles, ?)", string(role))).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		Where("NOT (? = ANY(roles))", string(role)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddRole - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AddRole - execute update: %w", ErrExecQuery, err)
	}

	// 0 строк: роль уже выдана либо аккаунта нет
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

// ListByIDs возвращает аккаунты по списку id, отсутствующие пропускаются
func (r *Repository) ListByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Account, error) {
	out := make(map[int64]*domain.Account, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(accountColumns...).
		From("accounts").
		Where(squirrel.Eq{"id": ids, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByIDs - scan account: %w", ErrScanRow, err)
		}
		out[acc.ID] = acc
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByIDs - rows error: %w", ErrScanRow, err)
	}

	return out, nil
}

func (r *Repository) execOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var (
		acc                  domain.Account
		roles                pq.StringArray
		activeRole           string
		createdAt, updatedAt sql.NullTime
	)
	if err := row.Scan(
		&acc.ID,
		&acc.Email,
		&acc.DisplayName,
		&roles,
		&activeRole,
		&acc.EmailVerified,
		&createdAt,
		&updatedAt,
		&acc.DeletedAt,
	); err != nil {
		return nil, err
	}

	acc.Roles = domain.RolesFromStrings(roles)
	acc.ActiveRole = domain.Role(activeRole)
	acc.CreatedAt = createdAt.Time
	acc.UpdatedAt = updatedAt.Time

	return &acc, nil
}
