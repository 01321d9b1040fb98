package update_slot

import (
	"context"

	"github.com/m04kA/companion-booking/internal/service/availability/models"
)

type AvailabilityService interface {
	UpdateSlot(ctx context.Context, companionID, slotID int64, req *models.SlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
