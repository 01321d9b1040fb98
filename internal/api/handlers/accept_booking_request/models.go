package accept_booking_request

import (
	"fmt"

	"github.com/m04kA/companion-booking/internal/api/handlers/create_booking"
	acceptRequest "github.com/m04kA/companion-booking/internal/usecase/accept_booking_request"
	"github.com/m04kA/companion-booking/pkg/types"
)

// AcceptRequest HTTP request model. Тело опционально
type AcceptRequest struct {
	StartTime *string `json:"startTime,omitempty"` // переопределяет время, предложенное клиентом
}

// AcceptResponse HTTP response model
type AcceptResponse struct {
	RequestID     int64                           `json:"requestId"`
	RequestStatus string                          `json:"requestStatus"`
	Booking       *create_booking.BookingResponse `json:"booking"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AcceptRequest) ToUseCaseRequest(requestID, companionID int64) (*acceptRequest.Request, error) {
	req := &acceptRequest.Request{
		RequestID:   requestID,
		CompanionID: companionID,
	}
	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("parse start time: %w", err)
		}
		req.StartTime = &start
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *acceptRequest.Response) *AcceptResponse {
	return &AcceptResponse{
		RequestID:     resp.RequestID,
		RequestStatus: resp.RequestStatus,
		Booking:       create_booking.FromUseCaseResponse(resp.Booking),
	}
}
