package bookingrequests

import (
	"context"

	"github.com/m04kA/companion-booking/internal/domain"
)

// BookingRequestRepository интерфейс репозитория запросов на бронирование
type BookingRequestRepository interface {
	Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.BookingRequest, error)
	List(ctx context.Context, filter domain.BookingRequestFilter) ([]*domain.BookingRequest, error)
	UpdateResponse(ctx context.Context, req *domain.BookingRequest) error
}

// AccessResolver проверка ролей, верификации клиента и заявки компаньона
type AccessResolver interface {
	Account(ctx context.Context, accountID int64) (*domain.Account, error)
	RequireRole(ctx context.Context, accountID int64, role domain.Role) (*domain.Account, error)
	RequireVerifiedClient(ctx context.Context, accountID int64) (*domain.Account, error)
	ApprovedCompanion(ctx context.Context, companionID int64) (*domain.CompanionApplication, error)
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
