package get_available_slots

import (
	"sort"
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/pkg/types"
)

// buildSlots раскладывает бронирования дня по слотам
// Для сегодняшней даты свободное время начинается не раньше текущей минуты
func buildSlots(slots []*domain.AvailabilitySlot, bookings []*domain.Booking, requestDate, now time.Time) []Slot {
	notBefore := 0
	if isSameDay(requestDate, now) {
		notBefore = now.Hour()*60 + now.Minute()
	}

	result := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		if !slot.IsAvailable {
			continue
		}

		booked := bookedIntervals(slot, bookings)
		result = append(result, Slot{
			SlotID:    slot.ID,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Services:  slot.Services.Strings(),
			Booked:    booked,
			Free:      freeIntervals(slot, booked, notBefore),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})
	return result
}

// bookedIntervals возвращает неотмененные бронирования, пересекающиеся со слотом,
// обрезанные по его границам и отсортированные по началу.
// Граничные случаи (бронирование заканчивается ровно в начале слота) не считаются пересечением
func bookedIntervals(slot *domain.AvailabilitySlot, bookings []*domain.Booking) []Interval {
	slotStart, slotEnd := slot.StartTime.MustMinutes(), slot.EndTime.MustMinutes()

	result := make([]Interval, 0)
	for _, booking := range bookings {
		if !booking.BlocksCalendar() || !slot.Overlaps(booking.StartTime, booking.EndTime) {
			continue
		}
		start := max(booking.StartTime.MustMinutes(), slotStart)
		end := min(booking.EndTime.MustMinutes(), slotEnd)
		result = append(result, interval(start, end))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})
	return result
}

// freeIntervals вычитает занятые интервалы из слота
// Интервалы короче минимальной длительности бронирования отбрасываются
func freeIntervals(slot *domain.AvailabilitySlot, booked []Interval, notBefore int) []Interval {
	cursor := max(slot.StartTime.MustMinutes(), notBefore)
	slotEnd := slot.EndTime.MustMinutes()

	result := make([]Interval, 0)
	appendFree := func(start, end int) {
		if end-start >= domain.MinBookingDurationMinutes {
			result = append(result, interval(start, end))
		}
	}

	for _, b := range booked {
		start, end := b.StartTime.MustMinutes(), b.EndTime.MustMinutes()
		if start > cursor {
			appendFree(cursor, start)
		}
		cursor = max(cursor, end)
	}
	if cursor < slotEnd {
		appendFree(cursor, slotEnd)
	}

	return result
}

func interval(start, end int) Interval {
	s, _ := types.NewTimeStringFromMinutes(start)
	e, _ := types.NewTimeStringFromMinutes(end)
	return Interval{StartTime: s, EndTime: e}
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
