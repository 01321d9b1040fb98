package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetBlockingByCompanionAndDate(ctx context.Context, companionID int64, date time.Time) ([]*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов доступности
type SlotRepository interface {
	ListByCompanionAndDay(ctx context.Context, companionID int64, day domain.DayOfWeek) ([]*domain.AvailabilitySlot, error)
}

// AccessResolver проверки доступа по сохраненному состоянию аккаунтов
type AccessResolver interface {
	RequireRole(ctx context.Context, accountID int64, role domain.Role) (*domain.Account, error)
	ClientVerified(ctx context.Context, clientID int64) (bool, error)
	ApprovedCompanion(ctx context.Context, companionID int64) (*domain.CompanionApplication, error)
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
	AdvisoryLock(ctx context.Context, key string) error
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
