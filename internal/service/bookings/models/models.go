package models

import (
	"fmt"
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
	requestModels "github.com/m04kA/companion-booking/internal/service/bookingrequests/models"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled completed no_show"`
	Reason string `json:"reason" validate:"max=500"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason" validate:"max=500"`
}

// ListBookingsRequest фильтр списка бронирований текущей стороны (client или companion)
type ListBookingsRequest struct {
	Status           *string `schema:"status"`
	StartDate        *string `schema:"startDate"` // "2024-06-01"
	EndDate          *string `schema:"endDate"`
	IncludeCancelled bool    `schema:"includeCancelled"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{IncludeCancelled: r.IncludeCancelled}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.StartDate != nil {
		d, err := time.Parse(domain.DateFormat, *r.StartDate)
		if err != nil {
			return filter, fmt.Errorf("startDate: %w", err)
		}
		filter.StartDate = &d
	}
	if r.EndDate != nil {
		d, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return filter, fmt.Errorf("endDate: %w", err)
		}
		filter.EndDate = &d
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64   `json:"id"`
	ClientID         int64   `json:"clientId"`
	CompanionID      int64   `json:"companionId"`
	BookingRequestID *int64  `json:"bookingRequestId,omitempty"`
	BookingDate      string  `json:"bookingDate"` // "2024-06-03"
	StartTime        string  `json:"startTime"`   // "12:00"
	EndTime          string  `json:"endTime"`
	DurationMinutes  int     `json:"durationMinutes"`
	ServiceType      *string `json:"serviceType,omitempty"`
	MeetingLocation  string  `json:"meetingLocation"`
	MeetingType      string  `json:"meetingType"`
	SpecialRequests  *string `json:"specialRequests,omitempty"`
	Status           string  `json:"status"`
	PaymentStatus    string  `json:"paymentStatus"`

	// Снимок стоимости на момент создания
	HourlyRate        float64 `json:"hourlyRate"`
	ExtraAmount       float64 `json:"extraAmount"`
	TotalAmount       float64 `json:"totalAmount"`
	PlatformFee       float64 `json:"platformFee"`
	CompanionEarnings float64 `json:"companionEarnings"`

	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format
	ConfirmedAt        *string `json:"confirmedAt,omitempty"`
	CompletedAt        *string `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// PendingApprovalsResponse все, что ждет ответа компаньона
type PendingApprovalsResponse struct {
	Bookings []BookingResponse                      `json:"bookings"`
	Requests []requestModels.BookingRequestResponse `json:"requests"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ClientID:           b.ClientID,
		CompanionID:        b.CompanionID,
		BookingRequestID:   b.BookingRequestID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		DurationMinutes:    b.DurationMinutes(),
		MeetingLocation:    b.MeetingLocation,
		MeetingType:        string(b.MeetingType),
		SpecialRequests:    b.SpecialRequests,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		HourlyRate:         b.HourlyRate,
		ExtraAmount:        b.ExtraAmount,
		TotalAmount:        b.TotalAmount,
		PlatformFee:        b.PlatformFee,
		CompanionEarnings:  b.CompanionEarnings,
		CancellationReason: b.CancellationReason,
		CancelledAt:        formatTime(b.CancelledAt),
		ConfirmedAt:        formatTime(b.ConfirmedAt),
		CompletedAt:        formatTime(b.CompletedAt),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.ServiceType != nil {
		v := string(*b.ServiceType)
		resp.ServiceType = &v
	}
	if b.CancelledBy != nil {
		v := string(*b.CancelledBy)
		resp.CancelledBy = &v
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}
