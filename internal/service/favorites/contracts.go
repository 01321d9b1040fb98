package favorites

import (
	"context"

	"github.com/m04kA/companion-booking/internal/domain"
)

// FavoriteRepository интерфейс репозитория избранного
type FavoriteRepository interface {
	Add(ctx context.Context, clientID, companionID int64) error
	Remove(ctx context.Context, clientID, companionID int64) error
	ListByClient(ctx context.Context, clientID int64) ([]*domain.Favorite, error)
}

// AccountRepository подгрузка имен компаньонов для списка
type AccountRepository interface {
	ListByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Account, error)
}

// AccessResolver гейт canBrowseOrBook и проверка компаньона
type AccessResolver interface {
	RequireRole(ctx context.Context, accountID int64, role domain.Role) (*domain.Account, error)
	RequireVerifiedClient(ctx context.Context, accountID int64) (*domain.Account, error)
	ApprovedCompanion(ctx context.Context, companionID int64) (*domain.CompanionApplication, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
