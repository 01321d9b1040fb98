package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/companion-booking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// ParseBookingStatus converts a string into a BookingStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBookingStatus, s)
	}
}

// IsTerminal returns true for statuses that end the lifecycle
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

// PaymentStatus is tracked on the booking but not driven by payment logic
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// MeetingType describes how the participants meet
type MeetingType string

const (
	MeetingInPerson MeetingType = "in_person"
	MeetingVirtual  MeetingType = "virtual"
)

// ParseMeetingType converts a string, defaulting to in_person for empty input
func ParseMeetingType(s string) (MeetingType, error) {
	switch mt := MeetingType(s); mt {
	case "":
		return MeetingInPerson, nil
	case MeetingInPerson, MeetingVirtual:
		return mt, nil
	default:
		return "", fmt.Errorf("domain: invalid meeting type %q", s)
	}
}

// bookingTransitions maps from -> to -> roles allowed to perform the transition
var bookingTransitions = map[BookingStatus]map[BookingStatus][]Role{
	StatusPending: {
		StatusConfirmed: {RoleCompanion},
		StatusCancelled: {RoleCompanion, RoleClient},
	},
	StatusConfirmed: {
		StatusCompleted: {RoleCompanion},
		StatusCancelled: {RoleCompanion, RoleClient},
		StatusNoShow:    {RoleCompanion},
	},
}

// CanTransition reports whether from -> to exists in the state machine
func CanTransition(from, to BookingStatus) bool {
	_, ok := bookingTransitions[from][to]
	return ok
}

// ValidateTransition checks the pair and that actor may perform it
func ValidateTransition(from, to BookingStatus, actor Role) error {
	actors, ok := bookingTransitions[from][to]
	if !ok {
		return &InvalidTransitionError{From: string(from), To: string(to)}
	}
	for _, r := range actors {
		if r == actor {
			return nil
		}
	}
	return fmt.Errorf("%w: %s may not move booking %s -> %s", ErrTransitionNotPermitted, actor, from, to)
}

// Booking represents a concrete dated reservation
type Booking struct {
	ID               int64
	ClientID         int64
	CompanionID      int64
	BookingRequestID *int64

	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString

	ServiceType     *ServiceTag
	MeetingLocation string
	MeetingType     MeetingType
	SpecialRequests *string

	Status        BookingStatus
	PaymentStatus PaymentStatus

	// Snapshot of amounts at creation time
	HourlyRate        float64
	ExtraAmount       float64
	TotalAmount       float64
	PlatformFee       float64
	CompanionEarnings float64

	CancelledBy        *Role
	CancellationReason *string
	CancelledAt        *time.Time
	ConfirmedAt        *time.Time
	CompletedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksCalendar returns true if the booking still occupies its interval
func (b *Booking) BlocksCalendar() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true if no further transition is possible
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// DurationMinutes returns the length of the booking
func (b *Booking) DurationMinutes() int {
	return b.StartTime.MinutesUntil(b.EndTime)
}

// Overlaps reports whether [start,end) intersects the booking interval
func (b *Booking) Overlaps(start, end types.TimeString) bool {
	return IntervalsOverlap(b.StartTime.MustMinutes(), b.EndTime.MustMinutes(), start.MustMinutes(), end.MustMinutes())
}

// ParticipantRole returns the side accountID is on, or ErrNotParticipant
func (b *Booking) ParticipantRole(accountID int64) (Role, error) {
	switch accountID {
	case b.ClientID:
		return RoleClient, nil
	case b.CompanionID:
		return RoleCompanion, nil
	default:
		return "", ErrNotParticipant
	}
}

// FindOverlappingBooking returns the first calendar-blocking booking intersecting [start,end)
func FindOverlappingBooking(bookings []*Booking, start, end types.TimeString) *Booking {
	for _, b := range bookings {
		if b.BlocksCalendar() && b.Overlaps(start, end) {
			return b
		}
	}
	return nil
}

// Amounts is the monetary snapshot of a booking
type Amounts struct {
	Total             float64
	PlatformFee       float64
	CompanionEarnings float64
}

// ComputeAmounts calculates amount = hours × rate (+ extra), fee = amount × percent / 100
func ComputeAmounts(durationMinutes int, hourlyRate, extra, platformFeePercent float64) Amounts {
	total := roundCents(float64(durationMinutes)/60*hourlyRate + extra)
	fee := roundCents(total * platformFeePercent / 100)
	return Amounts{
		Total:             total,
		PlatformFee:       fee,
		CompanionEarnings: roundCents(total - fee),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// BookingFilter фильтр для выборки бронирований
type BookingFilter struct {
	ClientID         *int64
	CompanionID      *int64
	StartDate        *time.Time
	EndDate          *time.Time
	Status           *BookingStatus
	IncludeCancelled bool
}
