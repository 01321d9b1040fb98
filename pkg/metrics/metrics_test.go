package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_IndependentRegistries(t *testing.T) {
	require.NotPanics(t, func() {
		New("a")
		New("b")
	})
}

func TestMetrics_ObserveAndExpose(t *testing.T) {
	m := New("companion-booking")

	m.ObserveHTTP(http.MethodPost, "/api/v1/bookings", "201", 15*time.Millisecond)
	m.ObserveDBQuery("query", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/bookings", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrorsTotal.WithLabelValues("query")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestBookingRecorder_NilSafe(t *testing.T) {
	var r *BookingRecorder
	assert.NotPanics(t, func() {
		r.BookingCreated("direct")
		r.BookingRejected("double_booked")
		NewBookingRecorder(nil).Transition("pending", "confirmed")
	})

	m := New("svc")
	rec := NewBookingRecorder(m)
	rec.BookingRejected("double_booked")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingConflictsTotal.WithLabelValues("double_booked")))
}
