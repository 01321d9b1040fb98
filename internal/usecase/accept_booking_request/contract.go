package accept_booking_request

import (
	"context"
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/internal/usecase/create_booking"
)

// BookingRequestRepository интерфейс репозитория запросов на бронирование
type BookingRequestRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.BookingRequest, error)
	UpdateResponse(ctx context.Context, req *domain.BookingRequest) error
}

// BookingCreator общий алгоритм создания бронирования, выполняется в транзакции вызывающего
type BookingCreator interface {
	Book(ctx context.Context, req *create_booking.Request) (*domain.Booking, error)
}

// AccessResolver проверка активной роли компаньона
type AccessResolver interface {
	RequireRole(ctx context.Context, accountID int64, role domain.Role) (*domain.Account, error)
}

// EventDispatcher отправка событий после коммита
type EventDispatcher interface {
	Dispatch(ctx context.Context, events ...domain.Event)
}

// MetricsRecorder бизнес-метрики создания бронирований
type MetricsRecorder interface {
	BookingCreated(source string)
	BookingRejected(reason string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
