package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
	createBooking "github.com/m04kA/companion-booking/internal/usecase/create_booking"
	"github.com/m04kA/companion-booking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CompanionID     int64   `json:"companionId" validate:"required,gt=0"`
	BookingDate     string  `json:"bookingDate" validate:"required"` // "2024-06-03"
	StartTime       string  `json:"startTime" validate:"required"`   // "12:00"
	EndTime         string  `json:"endTime" validate:"required"`     // "14:00"
	ServiceType     *string `json:"serviceType,omitempty"`
	MeetingLocation string  `json:"meetingLocation" validate:"max=255"`
	MeetingType     string  `json:"meetingType" validate:"omitempty,oneof=in_person virtual"`
	SpecialRequests *string `json:"specialRequests,omitempty" validate:"omitempty,max=1000"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64   `json:"id"`
	ClientID          int64   `json:"clientId"`
	CompanionID       int64   `json:"companionId"`
	BookingRequestID  *int64  `json:"bookingRequestId,omitempty"`
	BookingDate       string  `json:"bookingDate"`
	StartTime         string  `json:"startTime"`
	EndTime           string  `json:"endTime"`
	ServiceType       *string `json:"serviceType,omitempty"`
	MeetingLocation   string  `json:"meetingLocation"`
	MeetingType       string  `json:"meetingType"`
	SpecialRequests   *string `json:"specialRequests,omitempty"`
	Status            string  `json:"status"`
	PaymentStatus     string  `json:"paymentStatus"`
	HourlyRate        float64 `json:"hourlyRate"`
	ExtraAmount       float64 `json:"extraAmount"`
	TotalAmount       float64 `json:"totalAmount"`
	PlatformFee       float64 `json:"platformFee"`
	CompanionEarnings float64 `json:"companionEarnings"`
	CreatedAt         string  `json:"createdAt"`
}

var (
	errParseDate = fmt.Errorf("parse booking date")
	errParseTime = fmt.Errorf("parse time")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errParseDate, err)
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errParseTime, err)
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errParseTime, err)
	}

	return &createBooking.Request{
		ClientID:        clientID,
		CompanionID:     r.CompanionID,
		Date:            bookingDate,
		StartTime:       startTime,
		EndTime:         endTime,
		ServiceType:     r.ServiceType,
		MeetingLocation: r.MeetingLocation,
		MeetingType:     r.MeetingType,
		SpecialRequests: r.SpecialRequests,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                resp.ID,
		ClientID:          resp.ClientID,
		CompanionID:       resp.CompanionID,
		BookingRequestID:  resp.BookingRequestID,
		BookingDate:       resp.BookingDate.Format(domain.DateFormat),
		StartTime:         resp.StartTime.String(),
		EndTime:           resp.EndTime.String(),
		ServiceType:       resp.ServiceType,
		MeetingLocation:   resp.MeetingLocation,
		MeetingType:       resp.MeetingType,
		SpecialRequests:   resp.SpecialRequests,
		Status:            resp.Status,
		PaymentStatus:     resp.PaymentStatus,
		HourlyRate:        resp.HourlyRate,
		ExtraAmount:       resp.ExtraAmount,
		TotalAmount:       resp.TotalAmount,
		PlatformFee:       resp.PlatformFee,
		CompanionEarnings: resp.CompanionEarnings,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
	}
}
