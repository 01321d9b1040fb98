package list_booking_requests

import (
	"context"

	"github.com/m04kA/companion-booking/internal/service/bookingrequests/models"
)

type BookingRequestService interface {
	List(ctx context.Context, accountID int64, req *models.ListBookingRequestsRequest) (*models.BookingRequestListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
