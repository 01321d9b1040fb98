package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/pkg/types"
)

func newBooking() *domain.Booking {
	return &domain.Booking{
		ClientID:          1,
		CompanionID:       10,
		BookingDate:       time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		StartTime:         types.TimeString("12:00"),
		EndTime:           types.TimeString("14:00"),
		MeetingLocation:   "Siam Paragon",
		MeetingType:       domain.MeetingInPerson,
		Status:            domain.StatusPending,
		PaymentStatus:     domain.PaymentUnpaid,
		HourlyRate:        50,
		TotalAmount:       100,
		PlatformFee:       20,
		CompanionEarnings: 80,
	}
}

func TestCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, now, now))

	created, err := NewRepository(db).Create(context.Background(), newBooking())
	require.NoError(t, err)

	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ExclusionViolationIsDoubleBooked(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: pqExclusionViolation, Constraint: "bookings_no_overlap"})

	_, err = NewRepository(db).Create(context.Background(), newBooking())
	assert.ErrorIs(t, err, domain.ErrDoubleBooked)
	assert.True(t, domain.IsConflict(err))
	assert.NotErrorIs(t, err, ErrExecQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_OtherErrorsAreExecErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "bookings_client_id_fkey"})

	_, err = NewRepository(db).Create(context.Background(), newBooking())
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, domain.ErrDoubleBooked)
}
