package create_booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.CompanionID <= 0 {
		return fmt.Errorf("%w: companionID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if err := domain.ValidateRange(req.StartTime, req.EndTime); err != nil {
		return err
	}

	duration := req.StartTime.MinutesUntil(req.EndTime)
	if duration < domain.MinBookingDurationMinutes || duration > domain.MaxBookingDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidDuration, domain.MinBookingDurationMinutes, domain.MaxBookingDurationMinutes)
	}

	if req.ExtraAmount < 0 {
		return fmt.Errorf("%w: extraAmount must not be negative", ErrInvalidInput)
	}

	if len(req.MeetingLocation) > domain.MaxMeetingLocationLength {
		return fmt.Errorf("%w: meetingLocation is too long", ErrInvalidInput)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: specialRequests is too long", ErrInvalidInput)
	}

	if _, err := domain.ParseMeetingType(req.MeetingType); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата и время начала еще не прошли
func validateDate(bookingDate time.Time, startTime types.TimeString, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// Если дата бронирования не сегодня, проверка времени не нужна
	if !isSameDay(bookingDate, now) {
		return nil
	}

	if !types.NewTimeString(now).IsBefore(startTime) {
		return ErrTooLateToBook
	}
	return nil
}

// validateService проверяет услугу по одобренной заявке и покрывающему слоту
func validateService(service *string, offered domain.ServiceTags, slot *domain.AvailabilitySlot) (*domain.ServiceTag, error) {
	if service == nil || strings.TrimSpace(*service) == "" {
		return nil, nil
	}
	tag := domain.ServiceTag(strings.TrimSpace(*service))
	if !offered.Contains(tag) {
		return nil, fmt.Errorf("%w: companion does not offer %q", domain.ErrInvalidService, tag)
	}
	if !slot.Services.Contains(tag) {
		return nil, fmt.Errorf("%w: %q is not offered in the %s-%s slot", domain.ErrInvalidService, tag, slot.StartTime, slot.EndTime)
	}
	return &tag, nil
}

// RejectionReason метка метрики для отказа в бронировании
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrDoubleBooked):
		return "double_booked"
	case errors.Is(err, domain.ErrOutsideAvailability):
		return "outside_availability"
	case errors.Is(err, domain.ErrSelfBooking):
		return "self_booking"
	case errors.Is(err, domain.ErrNotVerified):
		return "not_verified"
	case errors.Is(err, domain.ErrCompanionNotApproved):
		return "companion_not_approved"
	case errors.Is(err, domain.ErrRequestNotBookable):
		return "not_bookable"
	case errors.Is(err, ErrInternal):
		return "internal"
	default:
		return "validation"
	}
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
