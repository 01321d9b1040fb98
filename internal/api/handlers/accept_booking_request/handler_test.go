package accept_booking_request

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/internal/testutil/inmem"
	acceptRequest "github.com/m04kA/companion-booking/internal/usecase/accept_booking_request"
	createBooking "github.com/m04kA/companion-booking/internal/usecase/create_booking"
	"github.com/m04kA/companion-booking/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *acceptRequest.Request) (*acceptRequest.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*acceptRequest.Response)
	return resp, args.Error(1)
}

func serve(h *Handler, requestID, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(http.MethodPost, "/api/v1/booking-requests/"+requestID+"/accept", http.NoBody)
	} else {
		r = httptest.NewRequest(http.MethodPost, "/api/v1/booking-requests/"+requestID+"/accept", strings.NewReader(body))
	}
	r = mux.SetURLVars(r, map[string]string{"requestId": requestID})
	r = r.WithContext(middleware.WithAccountID(r.Context(), 10))
	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

func acceptedResponse() *acceptRequest.Response {
	start, _ := types.NewTimeStringFromString("15:00")
	end, _ := types.NewTimeStringFromString("16:30")
	requestID := int64(5)
	return &acceptRequest.Response{
		RequestID:     5,
		RequestStatus: string(domain.RequestAccepted),
		Booking: &createBooking.Response{
			ID:               77,
			ClientID:         1,
			CompanionID:      10,
			BookingRequestID: &requestID,
			BookingDate:      time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			StartTime:        start,
			EndTime:          end,
			Status:           string(domain.StatusPending),
		},
	}
}

func TestHandle_AcceptWithoutBody(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &acceptRequest.Request{RequestID: 5, CompanionID: 10}).
		Return(acceptedResponse(), nil).Once()

	rec := serve(NewHandler(uc, inmem.Logger{}), "5", "")

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp AcceptResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "accepted", resp.RequestStatus)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, int64(77), resp.Booking.ID)
	require.NotNil(t, resp.Booking.BookingRequestID)
	assert.Equal(t, int64(5), *resp.Booking.BookingRequestID)
	uc.AssertExpectations(t)
}

func TestHandle_StartOverride(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *acceptRequest.Request) bool {
		return req.StartTime != nil && req.StartTime.String() == "15:00"
	})).Return(acceptedResponse(), nil).Once()

	rec := serve(NewHandler(uc, inmem.Logger{}), "5", `{"startTime":"15:00"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name      string
		requestID string
		body      string
		err       error
		status    int
	}{
		{"bad id", "abc", "", nil, http.StatusBadRequest},
		{"bad start time", "5", `{"startTime":"25:00"}`, nil, http.StatusBadRequest},
		{"not found", "5", "", acceptRequest.ErrRequestNotFound, http.StatusNotFound},
		{"already handled", "5", "", domain.ErrRequestNotPending, http.StatusConflict},
		{"double booked", "5", "", domain.ErrDoubleBooked, http.StatusConflict},
		{"outside availability", "5", "", domain.ErrOutsideAvailability, http.StatusUnprocessableEntity},
		{"no longer bookable", "5", "", domain.ErrRequestNotBookable, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.err != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err).Once()
			}

			rec := serve(NewHandler(uc, inmem.Logger{}), tt.requestID, tt.body)

			assert.Equal(t, tt.status, rec.Code)
			uc.AssertExpectations(t)
		})
	}
}
