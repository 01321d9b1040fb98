package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/internal/service/access"
	"github.com/m04kA/companion-booking/internal/testutil/inmem"
)

func newTestService(t *testing.T) (*Service, *inmem.Store) {
	t.Helper()
	store := inmem.NewStore()
	store.SeedVerifiedClient(1)
	store.SeedCompanion(10, 50, "Dinner Companion", "City Tour")
	store.SeedCompanion(11, 30, "Coffee Date")

	catalog, err := domain.NewServiceCatalog(domain.DefaultServiceTags)
	require.NoError(t, err)
	resolver := access.NewResolver(store.Accounts(), store.Verifications(), store.Applications(), inmem.Logger{})
	return NewService(catalog, store.Applications(), store.SlotRepo(), resolver, inmem.Logger{}), store
}

func TestListServices(t *testing.T) {
	svc, _ := newTestService(t)
	assert.Equal(t, domain.DefaultServiceTags, svc.ListServices().Services)
}

func TestListCompanions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	all, err := svc.ListCompanions(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, all.Companions, 2)

	filtered, err := svc.ListCompanions(ctx, 1, "City Tour")
	require.NoError(t, err)
	require.Len(t, filtered.Companions, 1)
	assert.Equal(t, int64(10), filtered.Companions[0].ID)

	_, err = svc.ListCompanions(ctx, 1, "Skydiving")
	assert.ErrorIs(t, err, domain.ErrInvalidService)
}

func TestListCompanions_PendingVerificationBlocked(t *testing.T) {
	svc, store := newTestService(t)
	store.PutVerification(domain.ClientVerification{
		AccountID: 1,
		Address:   inmem.CompleteAddress,
		Review:    domain.Review{Status: domain.ReviewPending},
	})

	_, err := svc.ListCompanions(context.Background(), 1, "")
	assert.ErrorIs(t, err, domain.ErrNotVerified)
}

func TestGetCompanionSlots(t *testing.T) {
	svc, store := newTestService(t)
	store.SeedSlot(10, domain.Monday, "09:00", "17:00", "Dinner Companion")
	store.SeedSlot(11, domain.Monday, "09:00", "17:00", "Coffee Date")

	resp, err := svc.GetCompanionSlots(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, []string{"Dinner Companion"}, resp.Slots[0].Services)

	_, err = svc.GetCompanionSlots(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrCompanionNotFound)
}
