package create_booking_request

import (
	"context"

	"github.com/m04kA/companion-booking/internal/service/bookingrequests/models"
)

type BookingRequestService interface {
	Create(ctx context.Context, clientID int64, req *models.CreateBookingRequestRequest) (*models.BookingRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
