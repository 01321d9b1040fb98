package availability

import (
	"context"

	"github.com/m04kA/companion-booking/internal/domain"
)

// SlotRepository интерфейс репозитория слотов доступности
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.AvailabilitySlot, error)
	ListByCompanion(ctx context.Context, companionID int64) ([]*domain.AvailabilitySlot, error)
	ListByCompanionAndDay(ctx context.Context, companionID int64, day domain.DayOfWeek) ([]*domain.AvailabilitySlot, error)
	Update(ctx context.Context, slot *domain.AvailabilitySlot) error
	Delete(ctx context.Context, id int64) error
}

// AccessResolver проверка активной роли и одобренной заявки
type AccessResolver interface {
	RequireRole(ctx context.Context, accountID int64, role domain.Role) (*domain.Account, error)
	RequireApprovedCompanion(ctx context.Context, accountID int64) (*domain.Account, *domain.CompanionApplication, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	AdvisoryLock(ctx context.Context, key string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
