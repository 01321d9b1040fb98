package models

import (
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
)

// Request модели

// CreateBookingRequestRequest предложение клиента на произвольные дату и время
type CreateBookingRequestRequest struct {
	CompanionID     int64    `json:"companionId" validate:"required,gt=0"`
	RequestedDate   string   `json:"requestedDate" validate:"required"` // "2024-06-03"
	StartTime       *string  `json:"startTime,omitempty"`               // "19:00"
	EndTime         *string  `json:"endTime,omitempty"`
	DurationHours   float64  `json:"durationHours" validate:"gt=0"`
	ServiceType     string   `json:"serviceType" validate:"required"`
	ExtraAmount     *float64 `json:"extraAmount,omitempty" validate:"omitempty,gte=0"`
	MeetingLocation string   `json:"meetingLocation" validate:"max=255"`
	SpecialRequests *string  `json:"specialRequests,omitempty" validate:"omitempty,max=1000"`
}

// ListBookingRequestsRequest фильтр списка запросов
type ListBookingRequestsRequest struct {
	Status *string `schema:"status"`
}

// Response модели

// BookingRequestResponse запрос на бронирование
type BookingRequestResponse struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"clientId"`
	CompanionID     int64     `json:"companionId"`
	RequestedDate   string    `json:"requestedDate"`
	StartTime       *string   `json:"startTime,omitempty"`
	EndTime         *string   `json:"endTime,omitempty"`
	DurationHours   float64   `json:"durationHours"`
	ServiceType     string    `json:"serviceType"`
	ExtraAmount     *float64  `json:"extraAmount,omitempty"`
	MeetingLocation string    `json:"meetingLocation"`
	SpecialRequests *string   `json:"specialRequests,omitempty"`
	Status          string    `json:"status"`
	BookingID       *int64    `json:"bookingId,omitempty"`
	RespondedAt     *string   `json:"respondedAt,omitempty"` // ISO 8601 format
	CreatedAt       time.Time `json:"createdAt"`
}

// BookingRequestListResponse список запросов
type BookingRequestListResponse struct {
	Requests []BookingRequestResponse `json:"requests"`
}

// FromDomainRequest конвертирует domain модель в DTO
func FromDomainRequest(r *domain.BookingRequest) *BookingRequestResponse {
	if r == nil {
		return nil
	}

	resp := &BookingRequestResponse{
		ID:              r.ID,
		ClientID:        r.ClientID,
		CompanionID:     r.CompanionID,
		RequestedDate:   r.RequestedDate.Format(domain.DateFormat),
		DurationHours:   r.DurationHours,
		ServiceType:     string(r.ServiceType),
		ExtraAmount:     r.ExtraAmount,
		MeetingLocation: r.MeetingLocation,
		SpecialRequests: r.SpecialRequests,
		Status:          string(r.Status),
		BookingID:       r.BookingID,
		CreatedAt:       r.CreatedAt,
	}
	if r.StartTime != nil {
		v := r.StartTime.String()
		resp.StartTime = &v
	}
	if r.EndTime != nil {
		v := r.EndTime.String()
		resp.EndTime = &v
	}
	if r.RespondedAt != nil {
		v := r.RespondedAt.Format(time.RFC3339)
		resp.RespondedAt = &v
	}
	return resp
}

// FromDomainRequestList конвертирует список domain моделей в DTO
func FromDomainRequestList(list []*domain.BookingRequest) *BookingRequestListResponse {
	resp := &BookingRequestListResponse{Requests: make([]BookingRequestResponse, 0, len(list))}
	for _, r := range list {
		resp.Requests = append(resp.Requests, *FromDomainRequest(r))
	}
	return resp
}
