package accept_booking_request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/internal/service/access"
	"github.com/m04kA/companion-booking/internal/testutil/inmem"
	"github.com/m04kA/companion-booking/internal/usecase/create_booking"
	"github.com/m04kA/companion-booking/pkg/ptr"
	"github.com/m04kA/companion-booking/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeMetrics struct {
	created  []string
	rejected []string
}

func (m *fakeMetrics) BookingCreated(source string)  { m.created = append(m.created, source) }
func (m *fakeMetrics) BookingRejected(reason string) { m.rejected = append(m.rejected, reason) }

type env struct {
	uc         *UseCase
	store      *inmem.Store
	dispatcher *inmem.Dispatcher
	metrics    *fakeMetrics
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := inmem.NewStore()
	store.SeedVerifiedClient(1)
	store.SeedCompanion(10, 50, "Dinner Companion")
	store.SeedCompanion(11, 50, "Dinner Companion")
	store.SeedSlot(10, domain.Monday, "09:00", "17:00", "Dinner Companion")

	clock := fixedTime{t: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	resolver := access.NewResolver(store.Accounts(), store.Verifications(), store.Applications(), inmem.Logger{})
	tx := inmem.NewTxManager(store)
	dispatcher := &inmem.Dispatcher{}
	metrics := &fakeMetrics{}

	creator := create_booking.NewUseCase(store.BookingRepo(), store.SlotRepo(), resolver, dispatcher, metrics, tx, 20, inmem.Logger{})
	creator.SetTimeProvider(clock)

	uc := NewUseCase(store.RequestRepo(), creator, resolver, dispatcher, metrics, tx, inmem.Logger{})
	uc.timeProvider = clock

	return &env{uc: uc, store: store, dispatcher: dispatcher, metrics: metrics}
}

func (e *env) putRequest(start string, hours float64) int64 {
	return e.store.PutRequest(domain.BookingRequest{
		ClientID:        1,
		CompanionID:     10,
		RequestedDate:   inmem.Date("2024-06-03"),
		StartTime:       ptr.Ptr(types.TimeString(start)),
		DurationHours:   hours,
		ServiceType:     "Dinner Companion",
		ExtraAmount:     ptr.Ptr(10.0),
		MeetingLocation: "Lumphini Park",
		Status:          domain.RequestPending,
	})
}

func TestExecute_CreatesBookingFromRequest(t *testing.T) {
	e := newEnv(t)
	id := e.putRequest("12:00", 2)

	resp, err := e.uc.Execute(context.Background(), &Request{RequestID: id, CompanionID: 10})
	require.NoError(t, err)

	assert.Equal(t, string(domain.RequestAccepted), resp.RequestStatus)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, types.TimeString("12:00"), resp.Booking.StartTime)
	assert.Equal(t, types.TimeString("14:00"), resp.Booking.EndTime)
	assert.Equal(t, 110.0, resp.Booking.TotalAmount)
	assert.Equal(t, id, *resp.Booking.BookingRequestID)

	stored, ok := e.store.Request(id)
	require.True(t, ok)
	assert.Equal(t, domain.RequestAccepted, stored.Status)
	require.NotNil(t, stored.BookingID)
	assert.Equal(t, resp.Booking.ID, *stored.BookingID)

	assert.Equal(t, []domain.EventType{domain.EventBookingCreated, domain.EventBookingRequestClosed}, e.dispatcher.Types())
	assert.Equal(t, []string{SourceRequest}, e.metrics.created)
}

func TestExecute_StartOverride(t *testing.T) {
	e := newEnv(t)
	id := e.putRequest("12:00", 1.5)

	override := types.TimeString("15:00")
	resp, err := e.uc.Execute(context.Background(), &Request{RequestID: id, CompanionID: 10, StartTime: &override})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("15:00"), resp.Booking.StartTime)
	assert.Equal(t, types.TimeString("16:30"), resp.Booking.EndTime)
}

func TestExecute_RollbackOnCreationFailure(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(e *env) int64
		wantErr error
	}{
		{
			name:    "availability changed",
			prepare: func(e *env) int64 { return e.putRequest("18:00", 2) },
			wantErr: domain.ErrOutsideAvailability,
		},
		{
			name: "interval already booked",
			prepare: func(e *env) int64 {
				e.store.PutBooking(domain.Booking{
					ClientID:    2,
					CompanionID: 10,
					BookingDate: inmem.Date("2024-06-03"),
					StartTime:   "13:00",
					EndTime:     "15:00",
					Status:      domain.StatusConfirmed,
				})
				return e.putRequest("12:00", 2)
			},
			wantErr: domain.ErrDoubleBooked,
		},
		{
			name: "client verification revoked",
			prepare: func(e *env) int64 {
				e.store.PutVerification(domain.ClientVerification{
					AccountID: 1,
					Address:   inmem.CompleteAddress,
					Review:    domain.Review{Status: domain.ReviewPending},
				})
				return e.putRequest("12:00", 2)
			},
			wantErr: domain.ErrRequestNotBookable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			id := tt.prepare(e)
			before := len(e.store.Bookings())

			_, err := e.uc.Execute(context.Background(), &Request{RequestID: id, CompanionID: 10})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NotErrorIs(t, err, domain.ErrNotVerified)

			stored, ok := e.store.Request(id)
			require.True(t, ok)
			assert.Equal(t, domain.RequestPending, stored.Status)
			assert.Nil(t, stored.BookingID)
			assert.Nil(t, stored.RespondedAt)
			assert.Len(t, e.store.Bookings(), before)
			assert.Empty(t, e.dispatcher.Types())
			assert.Len(t, e.metrics.rejected, 1)
		})
	}
}

func TestExecute_OtherCompanionCannotAccept(t *testing.T) {
	e := newEnv(t)
	id := e.putRequest("12:00", 2)

	_, err := e.uc.Execute(context.Background(), &Request{RequestID: id, CompanionID: 11})
	assert.ErrorIs(t, err, ErrRequestNotFound)

	_, err = e.uc.Execute(context.Background(), &Request{RequestID: 999, CompanionID: 10})
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestExecute_NotPending(t *testing.T) {
	e := newEnv(t)
	id := e.putRequest("12:00", 2)

	_, err := e.uc.Execute(context.Background(), &Request{RequestID: id, CompanionID: 10})
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), &Request{RequestID: id, CompanionID: 10})
	assert.ErrorIs(t, err, domain.ErrRequestNotPending)
	assert.True(t, domain.IsState(err))
	assert.Len(t, e.store.Bookings(), 1)
}

func TestExecute_RequiresCompanionActiveRole(t *testing.T) {
	e := newEnv(t)
	id := e.putRequest("12:00", 2)

	_, err := e.uc.Execute(context.Background(), &Request{RequestID: id, CompanionID: 1})
	assert.ErrorIs(t, err, domain.ErrRoleNotActive)
}
