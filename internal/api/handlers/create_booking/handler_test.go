package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/internal/testutil/inmem"
	createBooking "github.com/m04kA/companion-booking/internal/usecase/create_booking"
	"github.com/m04kA/companion-booking/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createBooking.Response)
	return resp, args.Error(1)
}

const validBody = `{
	"companionId": 10,
	"bookingDate": "2024-06-03",
	"startTime": "12:00",
	"endTime": "14:00",
	"serviceType": "Dinner Companion",
	"meetingLocation": "Cafe Central",
	"meetingType": "in_person"
}`

func serve(h *Handler, body string, accountID int64) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if accountID != 0 {
		r = r.WithContext(middleware.WithAccountID(r.Context(), accountID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{}
	start, _ := types.NewTimeStringFromString("12:00")
	end, _ := types.NewTimeStringFromString("14:00")

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.ClientID == 1 &&
			req.CompanionID == 10 &&
			req.Date.Format(domain.DateFormat) == "2024-06-03" &&
			req.StartTime == start && req.EndTime == end &&
			req.ServiceType != nil && *req.ServiceType == "Dinner Companion"
	})).Return(&createBooking.Response{
		ID:                99,
		ClientID:          1,
		CompanionID:       10,
		BookingDate:       time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		StartTime:         start,
		EndTime:           end,
		Status:            string(domain.StatusPending),
		PaymentStatus:     string(domain.PaymentUnpaid),
		HourlyRate:        50,
		TotalAmount:       100,
		PlatformFee:       20,
		CompanionEarnings: 80,
	}, nil).Once()

	rec := serve(NewHandler(uc, inmem.Logger{}), validBody, 1)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(99), resp.ID)
	assert.Equal(t, "2024-06-03", resp.BookingDate)
	assert.Equal(t, "12:00", resp.StartTime)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 80.0, resp.CompanionEarnings)
	uc.AssertExpectations(t)
}

func TestHandle_RequestErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		accountID int64
		status    int
	}{
		{"missing account", validBody, 0, http.StatusUnauthorized},
		{"malformed json", `{"companionId":`, 1, http.StatusBadRequest},
		{"missing companion", `{"bookingDate":"2024-06-03","startTime":"12:00","endTime":"14:00"}`, 1, http.StatusUnprocessableEntity},
		{"bad meeting type", strings.Replace(validBody, "in_person", "phone", 1), 1, http.StatusUnprocessableEntity},
		{"bad date", strings.Replace(validBody, "2024-06-03", "03.06.2024", 1), 1, http.StatusBadRequest},
		{"bad time", strings.Replace(validBody, `"12:00"`, `"noon"`, 1), 1, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			rec := serve(NewHandler(uc, inmem.Logger{}), tt.body, tt.accountID)
			assert.Equal(t, tt.status, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"double booked", fmt.Errorf("create: %w", domain.ErrDoubleBooked), http.StatusConflict},
		{"outside availability", domain.ErrOutsideAvailability, http.StatusUnprocessableEntity},
		{"self booking", domain.ErrSelfBooking, http.StatusUnprocessableEntity},
		{"not verified", domain.ErrNotVerified, http.StatusForbidden},
		{"companion not approved", domain.ErrCompanionNotApproved, http.StatusForbidden},
		{"date in past", createBooking.ErrInvalidDate, http.StatusUnprocessableEntity},
		{"too late", createBooking.ErrTooLateToBook, http.StatusUnprocessableEntity},
		{"duration", createBooking.ErrInvalidDuration, http.StatusUnprocessableEntity},
		{"internal", fmt.Errorf("%w: boom", createBooking.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := serve(NewHandler(uc, inmem.Logger{}), validBody, 1)

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
		})
	}
}
