package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/companion-booking/pkg/types"
)

// DayOfWeek is one of the seven symbolic weekdays
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// Week lists days in calendar order starting from Monday
var Week = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseDayOfWeek converts a case-insensitive day name
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	d := DayOfWeek(strings.ToLower(strings.TrimSpace(s)))
	for _, day := range Week {
		if d == day {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDayOfWeek, s)
}

// DayOfWeekFromDate resolves the weekday of a calendar date
func DayOfWeekFromDate(date time.Time) DayOfWeek {
	switch date.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// AvailabilitySlot is a weekly-recurring availability window of a companion
type AvailabilitySlot struct {
	ID          int64
	CompanionID int64
	DayOfWeek   DayOfWeek
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
	Services    ServiceTags

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateRange checks both times are well-formed and start < end
func ValidateRange(start, end types.TimeString) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidRange, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidRange, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: %s-%s", ErrInvalidRange, start, end)
	}
	return nil
}

// IntervalsOverlap реализует строгую проверку пересечения [a1,a2) и [b1,b2)
// Интервалы, которые только касаются концами, не пересекаются
func IntervalsOverlap(a1, a2, b1, b2 int) bool {
	return a1 < b2 && a2 > b1
}

// Overlaps reports whether [start,end) intersects the slot
func (s *AvailabilitySlot) Overlaps(start, end types.TimeString) bool {
	return IntervalsOverlap(s.StartTime.MustMinutes(), s.EndTime.MustMinutes(), start.MustMinutes(), end.MustMinutes())
}

// Covers reports whether the slot fully contains [start,end)
func (s *AvailabilitySlot) Covers(start, end types.TimeString) bool {
	return s.StartTime.MustMinutes() <= start.MustMinutes() && end.MustMinutes() <= s.EndTime.MustMinutes()
}

// FindOverlappingSlot returns the first slot of the same day that intersects [start,end),
// ignoring the slot with excludeID (0 = ignore none)
func FindOverlappingSlot(slots []*AvailabilitySlot, day DayOfWeek, start, end types.TimeString, excludeID int64) *AvailabilitySlot {
	for _, slot := range slots {
		if slot.DayOfWeek != day || (excludeID != 0 && slot.ID == excludeID) {
			continue
		}
		if slot.Overlaps(start, end) {
			return slot
		}
	}
	return nil
}

// FindCoveringSlot returns an available slot that fully contains [start,end)
func FindCoveringSlot(slots []*AvailabilitySlot, day DayOfWeek, start, end types.TimeString) *AvailabilitySlot {
	for _, slot := range slots {
		if slot.DayOfWeek == day && slot.IsAvailable && slot.Covers(start, end) {
			return slot
		}
	}
	return nil
}
