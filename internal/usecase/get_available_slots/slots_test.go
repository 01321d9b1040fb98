package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/pkg/types"
)

func booking(start, end string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    status,
	}
}

func iv(start, end string) Interval {
	return Interval{StartTime: types.TimeString(start), EndTime: types.TimeString(end)}
}

func TestBookedIntervals(t *testing.T) {
	slot := &domain.AvailabilitySlot{StartTime: "09:00", EndTime: "17:00", IsAvailable: true}

	bookings := []*domain.Booking{
		booking("14:00", "16:00", domain.StatusConfirmed),
		booking("12:00", "14:00", domain.StatusPending),
		booking("10:00", "11:00", domain.StatusCancelled),
		booking("08:00", "09:00", domain.StatusPending), // граничит со слотом
		booking("16:30", "18:00", domain.StatusPending), // выходит за слот
	}

	got := bookedIntervals(slot, bookings)
	assert.Equal(t, []Interval{iv("12:00", "14:00"), iv("14:00", "16:00"), iv("16:30", "17:00")}, got)
}

func TestFreeIntervals(t *testing.T) {
	slot := &domain.AvailabilitySlot{StartTime: "09:00", EndTime: "17:00", IsAvailable: true}

	tests := []struct {
		name      string
		booked    []Interval
		notBefore int
		want      []Interval
	}{
		{
			name: "no bookings",
			want: []Interval{iv("09:00", "17:00")},
		},
		{
			name:   "booking in the middle",
			booked: []Interval{iv("12:00", "14:00")},
			want:   []Interval{iv("09:00", "12:00"), iv("14:00", "17:00")},
		},
		{
			name:   "gap shorter than minimum duration is dropped",
			booked: []Interval{iv("09:00", "12:00"), iv("12:20", "17:00")},
			want:   []Interval{},
		},
		{
			name:      "today starts at current minute",
			booked:    []Interval{iv("12:00", "14:00")},
			notBefore: 13*60 + 15,
			want:      []Interval{iv("14:00", "17:00")},
		},
		{
			name:   "fully booked",
			booked: []Interval{iv("09:00", "17:00")},
			want:   []Interval{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, freeIntervals(slot, tt.booked, tt.notBefore))
		})
	}
}

func TestBuildSlots_SkipsUnavailableAndSorts(t *testing.T) {
	slots := []*domain.AvailabilitySlot{
		{ID: 2, StartTime: "18:00", EndTime: "20:00", IsAvailable: true},
		{ID: 3, StartTime: "13:00", EndTime: "15:00", IsAvailable: false},
		{ID: 1, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
	}
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	got := buildSlots(slots, nil, date, now)
	if assert.Len(t, got, 2) {
		assert.Equal(t, int64(1), got[0].SlotID)
		assert.Equal(t, int64(2), got[1].SlotID)
	}
}
