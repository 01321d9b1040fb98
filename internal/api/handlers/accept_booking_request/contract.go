package accept_booking_request

import (
	"context"

	acceptRequest "github.com/m04kA/companion-booking/internal/usecase/accept_booking_request"
)

type AcceptBookingRequestUseCase interface {
	Execute(ctx context.Context, req *acceptRequest.Request) (*acceptRequest.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
