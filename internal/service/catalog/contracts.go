package catalog

import (
	"context"

	"github.com/m04kA/companion-booking/internal/domain"
)

// ApplicationRepository выборка одобренных компаньонов
type ApplicationRepository interface {
	ListApprovedCompanions(ctx context.Context, service *domain.ServiceTag) ([]*domain.CompanionProfile, error)
}

// SlotRepository недельная сетка компаньона
type SlotRepository interface {
	ListByCompanion(ctx context.Context, companionID int64) ([]*domain.AvailabilitySlot, error)
}

// AccessResolver гейт canBrowseOrBook
type AccessResolver interface {
	RequireVerifiedClient(ctx context.Context, accountID int64) (*domain.Account, error)
	ApprovedCompanion(ctx context.Context, companionID int64) (*domain.CompanionApplication, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
