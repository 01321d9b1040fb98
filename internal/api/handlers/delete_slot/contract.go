package delete_slot

import "context"

type AvailabilityService interface {
	RemoveSlot(ctx context.Context, companionID, slotID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
