package verification

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/companion-booking/internal/auth"
	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/internal/service/access"
	"github.com/m04kA/companion-booking/internal/service/verification/models"
	"github.com/m04kA/companion-booking/internal/testutil/inmem"
)

const (
	clientID = int64(1)
	adminID  = int64(9)
)

type testEnv struct {
	svc        *Service
	store      *inmem.Store
	dispatcher *inmem.Dispatcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := inmem.NewStore()
	store.PutAccount(domain.Account{ID: clientID, Roles: []domain.Role{domain.RoleClient}, ActiveRole: domain.RoleClient})
	store.PutAccount(domain.Account{ID: adminID, Roles: []domain.Role{domain.RoleAdmin}, ActiveRole: domain.RoleAdmin})

	catalog, err := domain.NewServiceCatalog(domain.DefaultServiceTags)
	require.NoError(t, err)

	resolver := access.NewResolver(store.Accounts(), store.Verifications(), store.Applications(), inmem.Logger{})
	dispatcher := &inmem.Dispatcher{}
	svc := NewService(
		store.Verifications(),
		store.Applications(),
		store.Accounts(),
		resolver,
		catalog,
		auth.HashSecret,
		dispatcher,
		inmem.NewTxManager(store),
		inmem.Logger{},
	)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }
	return &testEnv{svc: svc, store: store, dispatcher: dispatcher}
}

func verificationRequest() *models.SubmitVerificationRequest {
	return &models.SubmitVerificationRequest{
		Address: models.AddressRequest{
			Line1:      "12 Sukhumvit Rd",
			City:       "Bangkok",
			PostalCode: "10110",
			Country:    "TH",
		},
		GovernmentIDType:        "passport",
		GovernmentIDNumber:      "AB1234567",
		GovernmentIDDocumentURI: "s3://docs/passport.jpg",
	}
}

func applicationRequest() *models.SubmitApplicationRequest {
	return &models.SubmitApplicationRequest{
		LegalName:       "Jane Doe",
		DateOfBirth:     "1995-04-12",
		Phone:           "+66000000",
		City:            "Bangkok",
		DocumentURIs:    []string{"s3://docs/id.jpg"},
		ServicesOffered: []string{"City Tour", "Coffee Date"},
		HourlyRate:      50,
	}
}

func TestClientVerificationLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.svc.SubmitClientVerification(ctx, clientID, verificationRequest())
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.False(t, resp.CanBrowseOrBook)

	_, err = env.svc.SubmitClientVerification(ctx, clientID, verificationRequest())
	assert.ErrorIs(t, err, domain.ErrAlreadyPending)

	resp, err = env.svc.ReviewVerification(ctx, adminID, clientID, false, "blurry photo")
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, "blurry photo", *resp.RejectionReason)

	// повторная отправка после отказа
	resp, err = env.svc.SubmitClientVerification(ctx, clientID, verificationRequest())
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Nil(t, resp.RejectionReason)

	resp, err = env.svc.ReviewVerification(ctx, adminID, clientID, true, "")
	require.NoError(t, err)
	assert.True(t, resp.CanBrowseOrBook)

	_, err = env.svc.ReviewVerification(ctx, adminID, clientID, true, "")
	assert.ErrorIs(t, err, domain.ErrNotPendingReview)

	assert.Equal(t, []domain.EventType{domain.EventVerificationReviewed, domain.EventVerificationReviewed}, env.dispatcher.Types())
}

func TestSubmitClientVerification_HashesIDNumber(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.SubmitClientVerification(context.Background(), clientID, verificationRequest())
	require.NoError(t, err)

	v, err := env.store.Verifications().Get(context.Background(), clientID)
	require.NoError(t, err)
	assert.NotEqual(t, "AB1234567", v.GovernmentIDNumberHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(v.GovernmentIDNumberHash), []byte("AB1234567")))
}

func TestSubmitClientVerification_IncompleteAddress(t *testing.T) {
	env := newTestEnv(t)
	req := verificationRequest()
	req.Address.PostalCode = " "

	_, err := env.svc.SubmitClientVerification(context.Background(), clientID, req)
	assert.ErrorIs(t, err, domain.ErrIncompleteAddress)
}

func TestReviewVerification_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.SubmitClientVerification(context.Background(), clientID, verificationRequest())
	require.NoError(t, err)

	_, err = env.svc.ReviewVerification(context.Background(), clientID, clientID, true, "")
	assert.ErrorIs(t, err, domain.ErrRoleNotActive)
}

func TestReview_RejectionReasonTooLong(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	long := strings.Repeat("x", domain.MaxRejectionReasonLength+1)

	_, err := env.svc.SubmitClientVerification(ctx, clientID, verificationRequest())
	require.NoError(t, err)
	_, err = env.svc.ReviewVerification(ctx, adminID, clientID, false, long)
	assert.ErrorIs(t, err, ErrInvalidInput)

	app, err := env.svc.SubmitApplication(ctx, clientID, applicationRequest())
	require.NoError(t, err)
	_, err = env.svc.ReviewApplication(ctx, adminID, app.ID, false, long)
	assert.ErrorIs(t, err, ErrInvalidInput)

	stored, err := env.store.Verifications().Get(ctx, clientID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewPending, stored.Status)
}

func TestApplicationApprovalGrantsCompanionRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	app, err := env.svc.SubmitApplication(ctx, clientID, applicationRequest())
	require.NoError(t, err)
	assert.Equal(t, "pending", app.Status)
	assert.Equal(t, []string{"City Tour", "Coffee Date"}, app.ServicesOffered)

	_, err = env.svc.SubmitApplication(ctx, clientID, applicationRequest())
	assert.ErrorIs(t, err, domain.ErrAlreadyPending)

	app, err = env.svc.ReviewApplication(ctx, adminID, app.ID, true, "")
	require.NoError(t, err)
	assert.Equal(t, "approved", app.Status)

	acc, _ := env.store.Account(clientID)
	assert.True(t, acc.HasRole(domain.RoleCompanion))
	assert.Equal(t, domain.RoleClient, acc.ActiveRole)

	_, err = env.svc.SubmitApplication(ctx, clientID, applicationRequest())
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)
	assert.Equal(t, []domain.EventType{domain.EventApplicationReviewed}, env.dispatcher.Types())
}

func TestApplicationRejectionKeepsRoles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	app, err := env.svc.SubmitApplication(ctx, clientID, applicationRequest())
	require.NoError(t, err)

	_, err = env.svc.ReviewApplication(ctx, adminID, app.ID, false, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.svc.ReviewApplication(ctx, adminID, app.ID, false, "incomplete documents")
	require.NoError(t, err)

	acc, _ := env.store.Account(clientID)
	assert.False(t, acc.HasRole(domain.RoleCompanion))

	// после отказа можно подать новую заявку
	_, err = env.svc.SubmitApplication(ctx, clientID, applicationRequest())
	assert.NoError(t, err)
}

func TestSubmitApplication_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *models.SubmitApplicationRequest)
		wantErr error
	}{
		{"unknown service", func(r *models.SubmitApplicationRequest) { r.ServicesOffered = []string{"Skydiving"} }, domain.ErrInvalidService},
		{"no services", func(r *models.SubmitApplicationRequest) { r.ServicesOffered = nil }, domain.ErrInvalidService},
		{"zero rate", func(r *models.SubmitApplicationRequest) { r.HourlyRate = 0 }, ErrInvalidInput},
		{"minor", func(r *models.SubmitApplicationRequest) { r.DateOfBirth = "2010-01-01" }, ErrInvalidInput},
		{"bad date", func(r *models.SubmitApplicationRequest) { r.DateOfBirth = "12/04/1995" }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := applicationRequest()
			tt.mutate(req)
			_, err := env.svc.SubmitApplication(ctx, clientID, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListQueues(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.SubmitClientVerification(ctx, clientID, verificationRequest())
	require.NoError(t, err)
	_, err = env.svc.SubmitApplication(ctx, clientID, applicationRequest())
	require.NoError(t, err)

	vs, err := env.svc.ListVerifications(ctx, adminID, domain.ReviewPending)
	require.NoError(t, err)
	assert.Len(t, vs.Verifications, 1)

	apps, err := env.svc.ListApplications(ctx, adminID, domain.ReviewPending)
	require.NoError(t, err)
	assert.Len(t, apps.Applications, 1)

	_, err = env.svc.ListApplications(ctx, clientID, domain.ReviewPending)
	assert.ErrorIs(t, err, domain.ErrRoleNotActive)
}
