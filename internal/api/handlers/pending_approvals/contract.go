package pending_approvals

import (
	"context"

	"github.com/m04kA/companion-booking/internal/service/bookings/models"
)

type BookingService interface {
	ListPendingApprovals(ctx context.Context, companionID int64) (*models.PendingApprovalsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
