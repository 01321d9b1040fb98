package bookings

import (
	"context"

	"github.com/m04kA/companion-booking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error
}

// BookingRequestRepository интерфейс репозитория запросов на бронирование
type BookingRequestRepository interface {
	List(ctx context.Context, filter domain.BookingRequestFilter) ([]*domain.BookingRequest, error)
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

// MetricsRecorder бизнес-метрики переходов статусов
type MetricsRecorder interface {
	Transition(from, to string)
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
