package domain

import "time"

// EventType names an outbound domain event
type EventType string

const (
	EventBookingCreated        EventType = "BookingCreated"
	EventBookingStatusChanged  EventType = "BookingStatusChanged"
	EventApplicationReviewed   EventType = "ApplicationReviewed"
	EventVerificationReviewed  EventType = "VerificationReviewed"
	EventBookingRequestCreated EventType = "BookingRequestCreated"
	EventBookingRequestClosed  EventType = "BookingRequestClosed"
)

// Event is handed to the notification dispatcher after the state change is committed
type Event struct {
	ID         string                 `json:"id"`
	Type       EventType              `json:"type"`
	OccurredAt time.Time              `json:"occurredAt"`
	Recipients []int64                `json:"recipients"`
	Payload    map[string]interface{} `json:"payload"`
}

// NewBookingCreatedEvent notifies the companion about a new booking
func NewBookingCreatedEvent(b *Booking, now time.Time) Event {
	return Event{
		Type:       EventBookingCreated,
		OccurredAt: now,
		Recipients: []int64{b.CompanionID, b.ClientID},
		Payload: map[string]interface{}{
			"bookingId":   b.ID,
			"clientId":    b.ClientID,
			"companionId": b.CompanionID,
			"bookingDate": b.BookingDate.Format(DateFormat),
			"startTime":   b.StartTime.String(),
			"endTime":     b.EndTime.String(),
			"totalAmount": b.TotalAmount,
		},
	}
}

// NewBookingStatusChangedEvent notifies both participants about a transition
func NewBookingStatusChangedEvent(b *Booking, from BookingStatus, actor Role, now time.Time) Event {
	return Event{
		Type:       EventBookingStatusChanged,
		OccurredAt: now,
		Recipients: []int64{b.ClientID, b.CompanionID},
		Payload: map[string]interface{}{
			"bookingId": b.ID,
			"from":      string(from),
			"to":        string(b.Status),
			"actor":     string(actor),
		},
	}
}

// NewApplicationReviewedEvent notifies the applicant
func NewApplicationReviewedEvent(app *CompanionApplication, now time.Time) Event {
	payload := map[string]interface{}{
		"applicationId": app.ID,
		"status":        string(app.Status),
	}
	if app.RejectionReason != nil {
		payload["reason"] = *app.RejectionReason
	}
	return Event{
		Type:       EventApplicationReviewed,
		OccurredAt: now,
		Recipients: []int64{app.AccountID},
		Payload:    payload,
	}
}

// NewVerificationReviewedEvent notifies the client
func NewVerificationReviewedEvent(v *ClientVerification, now time.Time) Event {
	payload := map[string]interface{}{
		"status": string(v.Status),
	}
	if v.RejectionReason != nil {
		payload["reason"] = *v.RejectionReason
	}
	return Event{
		Type:       EventVerificationReviewed,
		OccurredAt: now,
		Recipients: []int64{v.AccountID},
		Payload:    payload,
	}
}

// NewBookingRequestCreatedEvent notifies the companion about a proposal
func NewBookingRequestCreatedEvent(r *BookingRequest, now time.Time) Event {
	return Event{
		Type:       EventBookingRequestCreated,
		OccurredAt: now,
		Recipients: []int64{r.CompanionID},
		Payload: map[string]interface{}{
			"requestId":     r.ID,
			"clientId":      r.ClientID,
			"requestedDate": r.RequestedDate.Format(DateFormat),
			"serviceType":   string(r.ServiceType),
		},
	}
}

// NewBookingRequestClosedEvent notifies the client that the companion answered
func NewBookingRequestClosedEvent(r *BookingRequest, now time.Time) Event {
	payload := map[string]interface{}{
		"requestId": r.ID,
		"status":    string(r.Status),
	}
	if r.BookingID != nil {
		payload["bookingId"] = *r.BookingID
	}
	return Event{
		Type:       EventBookingRequestClosed,
		OccurredAt: now,
		Recipients: []int64{r.ClientID},
		Payload:    payload,
	}
}
