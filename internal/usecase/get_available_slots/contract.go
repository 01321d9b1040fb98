package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetBlockingByCompanionAndDate(ctx context.Context, companionID int64, date time.Time) ([]*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов доступности
type SlotRepository interface {
	ListByCompanionAndDay(ctx context.Context, companionID int64, day domain.DayOfWeek) ([]*domain.AvailabilitySlot, error)
}

// AccessResolver гейт canBrowseOrBook и проверка компаньона
type AccessResolver interface {
	RequireVerifiedClient(ctx context.Context, accountID int64) (*domain.Account, error)
	ApprovedCompanion(ctx context.Context, companionID int64) (*domain.CompanionApplication, error)
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
