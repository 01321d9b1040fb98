package list_my_slots

import (
	"context"

	"github.com/m04kA/companion-booking/internal/service/availability/models"
)

type AvailabilityService interface {
	ListMySlots(ctx context.Context, companionID int64) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
