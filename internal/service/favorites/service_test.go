package favorites

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/internal/service/access"
	"github.com/m04kA/companion-booking/internal/testutil/inmem"
)

func TestFavorites(t *testing.T) {
	store := inmem.NewStore()
	store.SeedVerifiedClient(1)
	store.SeedCompanion(10, 50, "City Tour")
	resolver := access.NewResolver(store.Accounts(), store.Verifications(), store.Applications(), inmem.Logger{})
	svc := NewService(store.FavoriteRepo(), store.Accounts(), resolver, inmem.Logger{})
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, 1, 10))
	require.NoError(t, svc.Add(ctx, 1, 10))

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list.Favorites, 1)
	assert.Equal(t, "companion", list.Favorites[0].DisplayName)

	assert.ErrorIs(t, svc.Add(ctx, 1, 99), domain.ErrCompanionNotApproved)

	require.NoError(t, svc.Remove(ctx, 1, 10))
	assert.ErrorIs(t, svc.Remove(ctx, 1, 10), ErrFavoriteNotFound)

	// компаньон в активной роли companion не ведет избранное
	_, err = svc.List(ctx, 10)
	assert.ErrorIs(t, err, domain.ErrRoleNotActive)
}
