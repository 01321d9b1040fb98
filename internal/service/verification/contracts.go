package verification

import (
	"context"

	"github.com/m04kA/companion-booking/internal/domain"
)

// VerificationRepository интерфейс репозитория верификаций клиентов
type VerificationRepository interface {
	Get(ctx context.Context, accountID int64) (*domain.ClientVerification, error)
	GetForUpdate(ctx context.Context, accountID int64) (*domain.ClientVerification, error)
	Save(ctx context.Context, v *domain.ClientVerification) error
	UpdateReview(ctx context.Context, v *domain.ClientVerification) error
	ListByStatus(ctx context.Context, status domain.ReviewStatus) ([]*domain.ClientVerification, error)
}

// ApplicationRepository интерфейс репозитория заявок компаньонов
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.CompanionApplication) (*domain.CompanionApplication, error)
	GetByID(ctx context.Context, id int64) (*domain.CompanionApplication, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.CompanionApplication, error)
	GetLatestByAccount(ctx context.Context, accountID int64) (*domain.CompanionApplication, error)
	UpdateReview(ctx context.Context, app *domain.CompanionApplication) error
	ListByStatus(ctx context.Context, status domain.ReviewStatus) ([]*domain.CompanionApplication, error)
}

// AccountRepository выдача роли companion при одобрении заявки
type AccountRepository interface {
	AddRole(ctx context.Context, id int64, role domain.Role) error
}

// AccessResolver проверка активной роли по сохраненному состоянию
type AccessResolver interface {
	Account(ctx context.Context, accountID int64) (*domain.Account, error)
	RequireRole(ctx context.Context, accountID int64, role domain.Role) (*domain.Account, error)
}

// EventDispatcher отправляет события после коммита
type EventDispatcher interface {
	Dispatch(ctx context.Context, events ...domain.Event)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
