package get_companion_slots

import (
	"context"

	"github.com/m04kA/companion-booking/internal/service/availability/models"
)

type CatalogService interface {
	GetCompanionSlots(ctx context.Context, clientID, companionID int64) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
