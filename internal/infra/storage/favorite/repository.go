package favorite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/pkg/dbmetrics"
	"github.com/m04kA/companion-booking/pkg/psqlbuilder"
)

// Repository репозиторий избранных компаньонов клиента
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Add добавляет компаньона в избранное. Повторное добавление ничего не меняет
func (r *Repository) Add(ctx context.Context, clientID, companionID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("favorites").
		Columns("client_id", "companion_id").
		Values(clientID, companionID).
		Suffix("ON CONFLICT (client_id, companion_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Add - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Add - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// Remove удаляет компаньона из избранного
func (r *Repository) Remove(ctx context.Context, clientID, companionID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("favorites").
		Where(squirrel.Eq{"client_id": clientID, "companion_id": companionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Remove - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Remove - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Remove - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}

// ListByClient возвращает избранное клиента, последние добавленные первыми
func (r *Repository) ListByClient(ctx context.Context, clientID int64) ([]*domain.Favorite, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("client_id", "companion_id", "created_at").
		From("favorites").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	out := make([]*domain.Favorite, 0)
	for rows.Next() {
		var f domain.Favorite
		var createdAt sql.NullTime
		if err := rows.Scan(&f.ClientID, &f.CompanionID, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListByClient - scan row: %w", ErrScanRow, err)
		}
		f.CreatedAt = createdAt.Time
		out = append(out, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByClient - rows error: %w", ErrScanRow, err)
	}

	return out, nil
}
