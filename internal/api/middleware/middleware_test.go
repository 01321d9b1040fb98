package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/companion-booking/internal/auth"
	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/internal/testutil/inmem"
)

func echoAccount(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetAccountID(r.Context())
		require.True(t, ok)
		w.Header().Set("X-Account", strconv.FormatInt(id, 10))
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuth(t *testing.T) {
	tokens := auth.NewTokens("secret", "companion-booking", time.Hour)
	handler := Auth(tokens, inmem.Logger{})(echoAccount(t))

	token, _, err := tokens.Issue(&domain.Account{
		ID:         42,
		Roles:      []domain.Role{domain.RoleClient},
		ActiveRole: domain.RoleClient,
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer abc.def.ghi", want: http.StatusUnauthorized},
		{name: "valid", header: "Bearer " + token, want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNoContent {
				assert.Equal(t, "42", rec.Header().Get("X-Account"))
			}
		})
	}
}

func TestGetAccountID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetAccountID(req.Context())
	assert.False(t, ok)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	call := func(accountID int64) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req = req.WithContext(WithAccountID(req.Context(), accountID))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, call(1))
	assert.Equal(t, http.StatusCreated, call(1))
	assert.Equal(t, http.StatusTooManyRequests, call(1))

	// у другого аккаунта свой бакет
	assert.Equal(t, http.StatusCreated, call(2))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.get("account:1")
	now = now.Add(2 * time.Hour)
	rl.get("account:2")

	rl.Cleanup(time.Hour)
	assert.Len(t, rl.limiters, 1)
	assert.Contains(t, rl.limiters, "account:2")
}

type observation struct {
	method, route, status string
}

type fakeObserver struct {
	seen []observation
}

func (o *fakeObserver) ObserveHTTP(method, route, status string, _ time.Duration) {
	o.seen = append(o.seen, observation{method, route, status})
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	observer := &fakeObserver{}
	router := mux.NewRouter()
	router.Use(Metrics(observer))
	router.HandleFunc("/api/v1/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/17", nil))

	require.Len(t, observer.seen, 1)
	assert.Equal(t, observation{"GET", "/api/v1/bookings/{bookingId}", "404"}, observer.seen[0])
}
