package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/internal/service/access"
	"github.com/m04kA/companion-booking/internal/testutil/inmem"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func newTestUseCase(t *testing.T) (*UseCase, *inmem.Store) {
	t.Helper()
	store := inmem.NewStore()
	store.SeedVerifiedClient(1)
	store.SeedCompanion(10, 50, "Dinner Companion")
	store.SeedSlot(10, domain.Monday, "09:00", "17:00", "Dinner Companion")
	store.SeedSlot(10, domain.Tuesday, "09:00", "17:00", "Dinner Companion")

	resolver := access.NewResolver(store.Accounts(), store.Verifications(), store.Applications(), inmem.Logger{})
	uc := NewUseCase(store.BookingRepo(), store.SlotRepo(), resolver, inmem.Logger{})
	uc.timeProvider = fixedTime{t: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	return uc, store
}

func TestExecute_DaySlotsWithBookings(t *testing.T) {
	uc, store := newTestUseCase(t)
	store.PutBooking(domain.Booking{
		ClientID:    1,
		CompanionID: 10,
		BookingDate: inmem.Date("2024-06-03"),
		StartTime:   "12:00",
		EndTime:     "14:00",
		Status:      domain.StatusPending,
	})

	resp, err := uc.Execute(context.Background(), &Request{ClientID: 1, CompanionID: 10, Date: inmem.Date("2024-06-03")})
	require.NoError(t, err)

	assert.Equal(t, domain.Monday, resp.DayOfWeek)
	require.Len(t, resp.Slots, 1)
	slot := resp.Slots[0]
	assert.Equal(t, []string{"Dinner Companion"}, slot.Services)
	assert.Equal(t, []Interval{iv("12:00", "14:00")}, slot.Booked)
	assert.Equal(t, []Interval{iv("09:00", "12:00"), iv("14:00", "17:00")}, slot.Free)
}

func TestExecute_Gates(t *testing.T) {
	uc, store := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{ClientID: 1, CompanionID: 99, Date: inmem.Date("2024-06-03")})
	assert.ErrorIs(t, err, ErrCompanionNotFound)

	_, err = uc.Execute(ctx, &Request{ClientID: 1, CompanionID: 10, Date: inmem.Date("2024-05-27")})
	assert.ErrorIs(t, err, ErrInvalidDate)

	store.PutVerification(domain.ClientVerification{
		AccountID: 1,
		Address:   inmem.CompleteAddress,
		Review:    domain.Review{Status: domain.ReviewPending},
	})
	_, err = uc.Execute(ctx, &Request{ClientID: 1, CompanionID: 10, Date: inmem.Date("2024-06-03")})
	assert.ErrorIs(t, err, domain.ErrNotVerified)
}

func TestExecute_NoSlotsThatDay(t *testing.T) {
	uc, _ := newTestUseCase(t)

	resp, err := uc.Execute(context.Background(), &Request{ClientID: 1, CompanionID: 10, Date: inmem.Date("2024-06-05")})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}
