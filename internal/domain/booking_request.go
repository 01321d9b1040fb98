package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/companion-booking/pkg/types"
)

// RequestStatus is the status of a booking request
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// ParseRequestStatus converts a string into a RequestStatus
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch st := RequestStatus(s); st {
	case RequestPending, RequestAccepted, RequestRejected:
		return st, nil
	default:
		return "", fmt.Errorf("domain: invalid booking request status %q", s)
	}
}

// BookingRequest is a client proposal for a custom date and time
type BookingRequest struct {
	ID          int64
	ClientID    int64
	CompanionID int64

	RequestedDate time.Time
	StartTime     *types.TimeString
	EndTime       *types.TimeString
	DurationHours float64

	ServiceType     ServiceTag
	ExtraAmount     *float64
	MeetingLocation string
	SpecialRequests *string

	Status      RequestStatus
	BookingID   *int64
	RespondedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval resolves the booking interval. startOverride, if set, wins over the proposed start.
// End time is the proposed end when present (it must agree with DurationHours), otherwise start + duration
func (r *BookingRequest) Interval(startOverride *types.TimeString) (types.TimeString, types.TimeString, error) {
	var start types.TimeString
	switch {
	case startOverride != nil && !startOverride.IsZero():
		start = *startOverride
	case r.StartTime != nil && !r.StartTime.IsZero():
		start = *r.StartTime
	default:
		return "", "", fmt.Errorf("%w: booking request has no start time", ErrInvalidRange)
	}

	if startOverride == nil && r.EndTime != nil && !r.EndTime.IsZero() {
		if err := ValidateRange(start, *r.EndTime); err != nil {
			return "", "", err
		}
		if start.MinutesUntil(*r.EndTime) != r.durationMinutes() {
			return "", "", fmt.Errorf("%w: %s-%s does not match duration of %g hours",
				ErrInvalidRange, start, *r.EndTime, r.DurationHours)
		}
		return start, *r.EndTime, nil
	}

	end, err := start.AddMinutes(r.durationMinutes())
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if err := ValidateRange(start, end); err != nil {
		return "", "", err
	}
	return start, end, nil
}

func (r *BookingRequest) durationMinutes() int {
	return int(math.Round(r.DurationHours * 60))
}

// Extra returns the extra amount or zero
func (r *BookingRequest) Extra() float64 {
	if r.ExtraAmount == nil {
		return 0
	}
	return *r.ExtraAmount
}

// Accept moves pending -> accepted
func (r *BookingRequest) Accept(now time.Time) error {
	if r.Status != RequestPending {
		return fmt.Errorf("%w: %w", ErrRequestNotPending,
			&InvalidTransitionError{From: string(r.Status), To: string(RequestAccepted)})
	}
	r.Status = RequestAccepted
	r.RespondedAt = &now
	return nil
}

// Reject moves pending -> rejected. Rejecting twice always reports ErrRequestAlreadyRejected
func (r *BookingRequest) Reject(now time.Time) error {
	switch r.Status {
	case RequestPending:
		r.Status = RequestRejected
		r.RespondedAt = &now
		return nil
	case RequestRejected:
		return ErrRequestAlreadyRejected
	default:
		return fmt.Errorf("%w: %w", ErrRequestNotPending,
			&InvalidTransitionError{From: string(r.Status), To: string(RequestRejected)})
	}
}

// BookingRequestFilter фильтр для выборки запросов
type BookingRequestFilter struct {
	ClientID    *int64
	CompanionID *int64
	Status      *RequestStatus
}
