package domain

import (
	"errors"
	"fmt"
)

// Validation errors: deterministic, caller-correctable
var (
	ErrSelfBooking          = errors.New("domain: client and companion must be different accounts")
	ErrOutsideAvailability  = errors.New("domain: requested interval is outside companion availability")
	ErrInvalidRange         = errors.New("domain: start time must be before end time")
	ErrInvalidService       = errors.New("domain: service is not offered")
	ErrInvalidDayOfWeek     = errors.New("domain: invalid day of week")
	ErrInvalidRole          = errors.New("domain: invalid role")
	ErrIncompleteAddress    = errors.New("domain: address is incomplete")
	ErrInvalidBookingStatus = errors.New("domain: invalid booking status")
)

// Conflict errors: depend on concurrent state
var (
	ErrDoubleBooked = errors.New("domain: interval overlaps an existing booking")
	ErrSlotOverlap  = errors.New("domain: slot overlaps an existing slot")
)

// Authorization errors: policy-dependent, never expose other accounts' state
var (
	ErrRoleNotGranted         = errors.New("domain: role is not granted to the account")
	ErrRoleNotActive          = errors.New("domain: operation requires a different active role")
	ErrNotVerified            = errors.New("domain: client verification is not approved")
	ErrCompanionNotApproved   = errors.New("domain: companion is not approved")
	ErrTransitionNotPermitted = errors.New("domain: actor may not perform this transition")
	ErrNotParticipant         = errors.New("domain: account is not a participant")
)

// State errors: caller acts on stale state
var (
	ErrInvalidTransition      = errors.New("domain: invalid status transition")
	ErrAlreadyPending         = errors.New("domain: submission is already pending review")
	ErrAlreadyApproved        = errors.New("domain: submission is already approved")
	ErrNotPendingReview       = errors.New("domain: submission is not pending review")
	ErrRequestNotPending      = errors.New("domain: booking request is not pending")
	ErrRequestAlreadyRejected = errors.New("domain: booking request is already rejected")
	ErrRequestNotBookable     = errors.New("domain: booking request can no longer be booked")
)

// InvalidTransitionError описывает недопустимый переход статуса
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("domain: invalid status transition %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// SlotOverlapError сообщает, с каким существующим слотом пересекается новый интервал
type SlotOverlapError struct {
	Conflicting AvailabilitySlot
}

func (e *SlotOverlapError) Error() string {
	return fmt.Sprintf("domain: slot overlaps existing slot %s %s-%s",
		e.Conflicting.DayOfWeek, e.Conflicting.StartTime, e.Conflicting.EndTime)
}

func (e *SlotOverlapError) Unwrap() error {
	return ErrSlotOverlap
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsValidation ошибка исправляется изменением входных данных
func IsValidation(err error) bool {
	return isAny(err, ErrSelfBooking, ErrOutsideAvailability, ErrInvalidRange, ErrInvalidService,
		ErrInvalidDayOfWeek, ErrInvalidRole, ErrIncompleteAddress, ErrInvalidBookingStatus)
}

// IsConflict ошибка вызвана конкурентным изменением состояния
func IsConflict(err error) bool {
	return isAny(err, ErrDoubleBooked, ErrSlotOverlap)
}

// IsAuthorization ошибка политики доступа
func IsAuthorization(err error) bool {
	return isAny(err, ErrRoleNotGranted, ErrRoleNotActive, ErrNotVerified, ErrCompanionNotApproved,
		ErrTransitionNotPermitted, ErrNotParticipant)
}

// IsState ошибка устаревшего состояния у вызывающей стороны
func IsState(err error) bool {
	return isAny(err, ErrInvalidTransition, ErrAlreadyPending, ErrAlreadyApproved, ErrNotPendingReview,
		ErrRequestNotPending, ErrRequestAlreadyRejected, ErrRequestNotBookable)
}
