package bookingrequests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/internal/service/access"
	"github.com/m04kA/companion-booking/internal/service/bookingrequests/models"
	"github.com/m04kA/companion-booking/internal/testutil/inmem"
	"github.com/m04kA/companion-booking/pkg/ptr"
)

const (
	clientID    = int64(1)
	companionID = int64(10)
)

type testEnv struct {
	svc        *Service
	store      *inmem.Store
	dispatcher *inmem.Dispatcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := inmem.NewStore()
	store.SeedVerifiedClient(clientID)
	store.SeedCompanion(companionID, 50, "Dinner Companion", "City Tour")

	resolver := access.NewResolver(store.Accounts(), store.Verifications(), store.Applications(), inmem.Logger{})
	dispatcher := &inmem.Dispatcher{}
	svc := NewService(store.RequestRepo(), resolver, dispatcher, inmem.NewTxManager(store), inmem.Logger{})
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }
	return &testEnv{svc: svc, store: store, dispatcher: dispatcher}
}

func createReq() *models.CreateBookingRequestRequest {
	return &models.CreateBookingRequestRequest{
		CompanionID:   companionID,
		RequestedDate: "2024-06-05",
		StartTime:     ptr.Ptr("19:00"),
		DurationHours: 3,
		ServiceType:   "Dinner Companion",
		ExtraAmount:   ptr.Ptr(25.0),
	}
}

func TestCreate(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.Create(context.Background(), clientID, createReq())
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	require.NotNil(t, resp.StartTime)
	assert.Equal(t, "19:00", *resp.StartTime)
	assert.Equal(t, []domain.EventType{domain.EventBookingRequestCreated}, env.dispatcher.Types())
}

func TestCreate_EndMatchingDuration(t *testing.T) {
	env := newTestEnv(t)
	req := createReq()
	req.EndTime = ptr.Ptr("22:00")

	resp, err := env.svc.Create(context.Background(), clientID, req)
	require.NoError(t, err)
	require.NotNil(t, resp.EndTime)
	assert.Equal(t, "22:00", *resp.EndTime)
}

func TestCreate_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		client  int64
		mutate  func(r *models.CreateBookingRequestRequest)
		wantErr error
	}{
		{"self", companionID, func(r *models.CreateBookingRequestRequest) {}, domain.ErrSelfBooking},
		{"past date", clientID, func(r *models.CreateBookingRequestRequest) { r.RequestedDate = "2024-05-31" }, ErrInvalidDate},
		{"too long", clientID, func(r *models.CreateBookingRequestRequest) { r.DurationHours = 13 }, ErrInvalidInput},
		{"service not offered", clientID, func(r *models.CreateBookingRequestRequest) { r.ServiceType = "Museum Visit" }, domain.ErrInvalidService},
		{"crosses midnight", clientID, func(r *models.CreateBookingRequestRequest) { r.StartTime = ptr.Ptr("22:00") }, domain.ErrInvalidRange},
		{"end before start", clientID, func(r *models.CreateBookingRequestRequest) { r.EndTime = ptr.Ptr("18:00") }, domain.ErrInvalidRange},
		{"end disagrees with duration", clientID, func(r *models.CreateBookingRequestRequest) { r.EndTime = ptr.Ptr("21:30") }, domain.ErrInvalidRange},
		{"negative extra", clientID, func(r *models.CreateBookingRequestRequest) { r.ExtraAmount = ptr.Ptr(-1.0) }, ErrInvalidInput},
		{"unknown companion", clientID, func(r *models.CreateBookingRequestRequest) { r.CompanionID = 77 }, domain.ErrCompanionNotApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createReq()
			tt.mutate(req)
			_, err := env.svc.Create(context.Background(), tt.client, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreate_UnverifiedClientBlocked(t *testing.T) {
	env := newTestEnv(t)
	env.store.PutVerification(domain.ClientVerification{
		AccountID: clientID,
		Address:   inmem.CompleteAddress,
		Review:    domain.Review{Status: domain.ReviewPending},
	})

	_, err := env.svc.Create(context.Background(), clientID, createReq())
	assert.ErrorIs(t, err, domain.ErrNotVerified)
}

func TestReject_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.Create(ctx, clientID, createReq())
	require.NoError(t, err)

	resp, err := env.svc.Reject(ctx, created.ID, companionID)
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)

	for i := 0; i < 2; i++ {
		_, err = env.svc.Reject(ctx, created.ID, companionID)
		assert.ErrorIs(t, err, domain.ErrRequestAlreadyRejected)
	}

	stored, _ := env.store.Request(created.ID)
	assert.Equal(t, domain.RequestRejected, stored.Status)
	assert.Equal(t, []domain.EventType{domain.EventBookingRequestCreated, domain.EventBookingRequestClosed}, env.dispatcher.Types())
}

func TestReject_AcceptedRequestIsNotPending(t *testing.T) {
	env := newTestEnv(t)
	id := env.store.PutRequest(domain.BookingRequest{
		ClientID:    clientID,
		CompanionID: companionID,
		Status:      domain.RequestAccepted,
	})

	_, err := env.svc.Reject(context.Background(), id, companionID)
	assert.ErrorIs(t, err, domain.ErrRequestNotPending)
}

func TestReject_OtherCompanion(t *testing.T) {
	env := newTestEnv(t)
	env.store.SeedCompanion(11, 30, "City Tour")
	created, err := env.svc.Create(context.Background(), clientID, createReq())
	require.NoError(t, err)

	_, err = env.svc.Reject(context.Background(), created.ID, 11)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestList_BySide(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.svc.Create(ctx, clientID, createReq())
	require.NoError(t, err)

	resp, err := env.svc.List(ctx, clientID, &models.ListBookingRequestsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Requests, 1)

	resp, err = env.svc.List(ctx, companionID, &models.ListBookingRequestsRequest{Status: ptr.Ptr("rejected")})
	require.NoError(t, err)
	assert.Empty(t, resp.Requests)

	got, err := env.svc.Get(ctx, firstRequestID(t, env), companionID)
	require.NoError(t, err)
	assert.Equal(t, clientID, got.ClientID)
}

func firstRequestID(t *testing.T, env *testEnv) int64 {
	t.Helper()
	resp, err := env.svc.List(context.Background(), clientID, &models.ListBookingRequestsRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Requests)
	return resp.Requests[0].ID
}
