package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/internal/service/access"
	"github.com/m04kA/companion-booking/pkg/types"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		refetch bool
	}{
		{"validation", fmt.Errorf("wrap: %w", domain.ErrSelfBooking), http.StatusUnprocessableEntity, false},
		{"outside availability", domain.ErrOutsideAvailability, http.StatusUnprocessableEntity, false},
		{"double booked", fmt.Errorf("create: %w", domain.ErrDoubleBooked), http.StatusConflict, false},
		{"not verified", domain.ErrNotVerified, http.StatusForbidden, false},
		{"role not active", domain.ErrRoleNotActive, http.StatusForbidden, false},
		{"invalid transition", &domain.InvalidTransitionError{From: "completed", To: "cancelled"}, http.StatusConflict, true},
		{"request not pending", domain.ErrRequestNotPending, http.StatusConflict, true},
		{"request not bookable", domain.ErrRequestNotBookable, http.StatusConflict, true},
		{"deleted account", access.ErrAccountNotFound, http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.True(t, RespondDomainError(rec, tt.err))
			assert.Equal(t, tt.status, rec.Code)

			body := decodeError(t, rec)
			assert.Equal(t, tt.refetch, body.Refetch)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestRespondDomainError_SlotOverlapCarriesConflict(t *testing.T) {
	start, _ := types.NewTimeStringFromString("09:00")
	end, _ := types.NewTimeStringFromString("12:00")
	err := &domain.SlotOverlapError{Conflicting: domain.AvailabilitySlot{
		ID:        7,
		DayOfWeek: domain.Monday,
		StartTime: start,
		EndTime:   end,
	}}

	rec := httptest.NewRecorder()
	require.True(t, RespondDomainError(rec, err))
	assert.Equal(t, http.StatusConflict, rec.Code)

	body := decodeError(t, rec)
	require.NotNil(t, body.Conflict)
	assert.Equal(t, int64(7), body.Conflict.ID)
	assert.Equal(t, "09:00", body.Conflict.StartTime)
	assert.Equal(t, "12:00", body.Conflict.EndTime)
}

func TestRespondDomainError_UnknownLeftToCaller(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.False(t, RespondDomainError(rec, errors.New("db is down")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

type sample struct {
	CompanionID int64  `json:"companionId" validate:"required,gt=0"`
	MeetingType string `json:"meetingType" validate:"omitempty,oneof=in_person virtual"`
}

func TestDecodeAndValidate(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"companionId":5,"meetingType":"virtual"}`))
	var s sample
	require.NoError(t, DecodeAndValidate(r, &s))
	assert.Equal(t, int64(5), s.CompanionID)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"companionId":5,"meetingType":"phone"}`))
	err := DecodeAndValidate(r, &sample{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meetingType")

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"companionId":`))
	assert.Error(t, DecodeAndValidate(r, &sample{}))
}

func TestDecodeQuery(t *testing.T) {
	var q struct {
		Status           *string `schema:"status"`
		IncludeCancelled bool    `schema:"includeCancelled"`
	}
	r := httptest.NewRequest(http.MethodGet, "/?status=confirmed&includeCancelled=true&page=2", nil)

	require.NoError(t, DecodeQuery(r, &q))
	require.NotNil(t, q.Status)
	assert.Equal(t, "confirmed", *q.Status)
	assert.True(t, q.IncludeCancelled)
}

func TestPathInt64(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"bookingId": tt.raw})
			got, err := PathInt64(r, "bookingId")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
