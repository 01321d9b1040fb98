package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/internal/service/access"
	"github.com/m04kA/companion-booking/internal/testutil/inmem"
	"github.com/m04kA/companion-booking/pkg/ptr"
	"github.com/m04kA/companion-booking/pkg/txmanager"
	"github.com/m04kA/companion-booking/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fakeMetrics struct {
	mu       sync.Mutex
	created  []string
	rejected []string
}

func (m *fakeMetrics) BookingCreated(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, source)
}

func (m *fakeMetrics) BookingRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected = append(m.rejected, reason)
}

type env struct {
	uc         *UseCase
	store      *inmem.Store
	tx         *inmem.TxManager
	dispatcher *inmem.Dispatcher
	metrics    *fakeMetrics
}

// Компаньон 10: понедельник 09:00-17:00, ставка 50, платформа берет 20%
func newEnv(t *testing.T) *env {
	t.Helper()
	store := inmem.NewStore()
	store.SeedVerifiedClient(1)
	store.SeedVerifiedClient(2)
	store.SeedCompanion(10, 50, "Dinner Companion", "City Tour")
	store.SeedSlot(10, domain.Monday, "09:00", "17:00", "Dinner Companion")

	resolver := access.NewResolver(store.Accounts(), store.Verifications(), store.Applications(), inmem.Logger{})
	tx := inmem.NewTxManager(store)
	dispatcher := &inmem.Dispatcher{}
	metrics := &fakeMetrics{}

	uc := NewUseCase(store.BookingRepo(), store.SlotRepo(), resolver, dispatcher, metrics, tx, 20, inmem.Logger{})
	uc.timeProvider = fixedTime{t: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}

	return &env{uc: uc, store: store, tx: tx, dispatcher: dispatcher, metrics: metrics}
}

func bookingRequest(clientID int64, date, start, end string) *Request {
	return &Request{
		ClientID:        clientID,
		CompanionID:     10,
		Date:            inmem.Date(date),
		StartTime:       types.TimeString(start),
		EndTime:         types.TimeString(end),
		ServiceType:     ptr.Ptr("Dinner Companion"),
		MeetingLocation: "Siam Paragon",
	}
}

func TestExecute_ScenarioDoubleBooking(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	resp, err := e.uc.Execute(ctx, bookingRequest(1, "2024-06-03", "12:00", "14:00"))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.PaymentUnpaid), resp.PaymentStatus)
	assert.Equal(t, string(domain.MeetingInPerson), resp.MeetingType)
	assert.Equal(t, 100.0, resp.TotalAmount)
	assert.Equal(t, 20.0, resp.PlatformFee)
	assert.Equal(t, 80.0, resp.CompanionEarnings)
	assert.Equal(t, 50.0, resp.HourlyRate)

	_, err = e.uc.Execute(ctx, bookingRequest(2, "2024-06-03", "13:00", "15:00"))
	assert.ErrorIs(t, err, domain.ErrDoubleBooked)
	assert.True(t, domain.IsConflict(err))

	assert.Len(t, e.store.Bookings(), 1)
	assert.Equal(t, []string{SourceDirect}, e.metrics.created)
	assert.Equal(t, []string{"double_booked"}, e.metrics.rejected)
	assert.Equal(t, []domain.EventType{domain.EventBookingCreated}, e.dispatcher.Types())
	assert.Contains(t, e.tx.Locks, domain.BookingLockKey(10, inmem.Date("2024-06-03")))
}

func TestExecute_BackToBackAllowed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.uc.Execute(ctx, bookingRequest(1, "2024-06-03", "12:00", "14:00"))
	require.NoError(t, err)
	_, err = e.uc.Execute(ctx, bookingRequest(2, "2024-06-03", "14:00", "16:00"))
	require.NoError(t, err)
	_, err = e.uc.Execute(ctx, bookingRequest(2, "2024-06-03", "10:00", "12:00"))
	require.NoError(t, err)

	assert.Len(t, e.store.Bookings(), 3)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	e := newEnv(t)
	e.store.PutBooking(domain.Booking{
		ClientID:    2,
		CompanionID: 10,
		BookingDate: inmem.Date("2024-06-03"),
		StartTime:   "12:00",
		EndTime:     "14:00",
		Status:      domain.StatusCancelled,
	})

	_, err := e.uc.Execute(context.Background(), bookingRequest(1, "2024-06-03", "12:00", "14:00"))
	require.NoError(t, err)
}

func TestExecute_OutsideAvailability(t *testing.T) {
	e := newEnv(t)

	_, err := e.uc.Execute(context.Background(), bookingRequest(1, "2024-06-03", "20:00", "21:00"))
	assert.ErrorIs(t, err, domain.ErrOutsideAvailability)
	assert.True(t, domain.IsValidation(err))

	// вторник: слотов нет
	_, err = e.uc.Execute(context.Background(), bookingRequest(1, "2024-06-04", "12:00", "14:00"))
	assert.ErrorIs(t, err, domain.ErrOutsideAvailability)

	// слот выключен
	e.store.PutSlot(domain.AvailabilitySlot{
		CompanionID: 10,
		DayOfWeek:   domain.Wednesday,
		StartTime:   "09:00",
		EndTime:     "17:00",
		IsAvailable: false,
		Services:    domain.NewServiceTags([]string{"Dinner Companion"}),
	})
	_, err = e.uc.Execute(context.Background(), bookingRequest(1, "2024-06-05", "12:00", "14:00"))
	assert.ErrorIs(t, err, domain.ErrOutsideAvailability)
	assert.Empty(t, e.store.Bookings())
}

func TestExecute_SelfBookingAlwaysFails(t *testing.T) {
	e := newEnv(t)

	req := bookingRequest(10, "2024-06-03", "12:00", "14:00")
	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrSelfBooking)

	// даже без слотов и с некорректным интервалом
	req = bookingRequest(10, "2024-06-04", "14:00", "12:00")
	_, err = e.uc.Book(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrSelfBooking)
	assert.Equal(t, []string{"self_booking"}, e.metrics.rejected)
}

func TestExecute_UnverifiedClientBlocked(t *testing.T) {
	e := newEnv(t)
	e.store.PutVerification(domain.ClientVerification{
		AccountID: 1,
		Address:   inmem.CompleteAddress,
		Review:    domain.Review{Status: domain.ReviewPending},
	})

	_, err := e.uc.Execute(context.Background(), bookingRequest(1, "2024-06-03", "12:00", "14:00"))
	assert.ErrorIs(t, err, domain.ErrNotVerified)
	assert.Empty(t, e.store.Bookings())
}

func TestExecute_RequiresClientActiveRole(t *testing.T) {
	e := newEnv(t)
	e.store.SeedCompanion(11, 40, "City Tour")

	_, err := e.uc.Execute(context.Background(), bookingRequest(11, "2024-06-03", "12:00", "14:00"))
	assert.ErrorIs(t, err, domain.ErrRoleNotActive)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{
			name:    "service not offered in slot",
			mutate:  func(r *Request) { r.ServiceType = ptr.Ptr("City Tour") },
			wantErr: domain.ErrInvalidService,
		},
		{
			name:    "service not offered by companion",
			mutate:  func(r *Request) { r.ServiceType = ptr.Ptr("Museum Visit") },
			wantErr: domain.ErrInvalidService,
		},
		{
			name:    "date in the past",
			mutate:  func(r *Request) { r.Date = inmem.Date("2024-05-27") },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "too short",
			mutate:  func(r *Request) { r.EndTime = "12:20" },
			wantErr: ErrInvalidDuration,
		},
		{
			name:    "inverted range",
			mutate:  func(r *Request) { r.EndTime = "11:00" },
			wantErr: domain.ErrInvalidRange,
		},
		{
			name:    "negative extra",
			mutate:  func(r *Request) { r.ExtraAmount = -1 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown meeting type",
			mutate:  func(r *Request) { r.MeetingType = "telepathy" },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			req := bookingRequest(1, "2024-06-03", "12:00", "14:00")
			tt.mutate(req)

			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, e.store.Bookings())
		})
	}
}

func TestExecute_TodayStartAlreadyPassed(t *testing.T) {
	e := newEnv(t)
	e.uc.timeProvider = fixedTime{t: time.Date(2024, 6, 3, 12, 30, 0, 0, time.UTC)}

	_, err := e.uc.Execute(context.Background(), bookingRequest(1, "2024-06-03", "12:00", "14:00"))
	assert.ErrorIs(t, err, ErrTooLateToBook)

	_, err = e.uc.Execute(context.Background(), bookingRequest(1, "2024-06-03", "13:00", "15:00"))
	require.NoError(t, err)
}

func TestBook_ExtraAmountIncludedInTotal(t *testing.T) {
	e := newEnv(t)
	req := bookingRequest(1, "2024-06-03", "12:00", "13:30")
	req.ExtraAmount = 25
	req.BookingRequestID = ptr.Ptr(int64(77))

	b, err := e.uc.Book(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 100.0, b.TotalAmount)
	assert.Equal(t, 20.0, b.PlatformFee)
	assert.Equal(t, 25.0, b.ExtraAmount)
	assert.Equal(t, int64(77), *b.BookingRequestID)
}

type conflictTx struct{}

func (conflictTx) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return fmt.Errorf("%w: could not serialize access", txmanager.ErrSerializationFailure)
}

func (conflictTx) AdvisoryLock(context.Context, string) error { return nil }

func TestBook_SerializationFailureReportedAsDoubleBooked(t *testing.T) {
	e := newEnv(t)
	e.uc.txManager = conflictTx{}

	_, err := e.uc.Execute(context.Background(), bookingRequest(1, "2024-06-03", "12:00", "14:00"))
	assert.ErrorIs(t, err, domain.ErrDoubleBooked)
	assert.Equal(t, []string{"double_booked"}, e.metrics.rejected)
}

func TestExecute_ConcurrentOverlappingBookings(t *testing.T) {
	e := newEnv(t)

	requests := []*Request{
		bookingRequest(1, "2024-06-03", "12:00", "14:00"),
		bookingRequest(2, "2024-06-03", "13:00", "15:00"),
	}

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, len(requests))
	)
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req *Request) {
			defer wg.Done()
			<-start
			_, errs[i] = e.uc.Execute(context.Background(), req)
		}(i, req)
	}
	close(start)
	wg.Wait()

	var succeeded, doubleBooked int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrDoubleBooked):
			doubleBooked++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, doubleBooked)
	assert.Len(t, e.store.Bookings(), 1)
	assert.Equal(t, []string{SourceDirect}, e.metrics.created)
	assert.Equal(t, []string{"double_booked"}, e.metrics.rejected)
	assert.Len(t, e.tx.Locks, 2)
}

type exclusionRepo struct {
	BookingRepository
}

func (exclusionRepo) Create(context.Context, *domain.Booking) (*domain.Booking, error) {
	return nil, fmt.Errorf("%w: bookings_no_overlap", domain.ErrDoubleBooked)
}

func TestBook_StorageOverlapIsConflict(t *testing.T) {
	e := newEnv(t)
	e.uc.bookingRepo = exclusionRepo{BookingRepository: e.store.BookingRepo()}

	_, err := e.uc.Execute(context.Background(), bookingRequest(1, "2024-06-03", "12:00", "14:00"))
	assert.ErrorIs(t, err, domain.ErrDoubleBooked)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{"double_booked"}, e.metrics.rejected)
	assert.Empty(t, e.dispatcher.Types())
}
