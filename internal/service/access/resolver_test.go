package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/internal/testutil/inmem"
)

var fullAddress = domain.Address{Line1: "1 Main St", City: "Bangkok", PostalCode: "10110", Country: "TH"}

func newTestResolver() (*Resolver, *inmem.Store) {
	store := inmem.NewStore()
	return NewResolver(store.Accounts(), store.Verifications(), store.Applications(), inmem.Logger{}), store
}

func TestRequireVerifiedClient(t *testing.T) {
	r, store := newTestResolver()
	ctx := context.Background()

	store.PutAccount(domain.Account{ID: 1, Roles: []domain.Role{domain.RoleClient}, ActiveRole: domain.RoleClient})

	// нет записи верификации
	_, err := r.RequireVerifiedClient(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotVerified)

	// pending блокирует независимо от адреса
	store.PutVerification(domain.ClientVerification{AccountID: 1, Address: fullAddress, Review: domain.Review{Status: domain.ReviewPending}})
	_, err = r.RequireVerifiedClient(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotVerified)

	// approved, но адрес неполный
	store.PutVerification(domain.ClientVerification{AccountID: 1, Address: domain.Address{City: "Bangkok"}, Review: domain.Review{Status: domain.ReviewApproved}})
	_, err = r.RequireVerifiedClient(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotVerified)

	store.PutVerification(domain.ClientVerification{AccountID: 1, Address: fullAddress, Review: domain.Review{Status: domain.ReviewApproved}})
	acc, err := r.RequireVerifiedClient(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), acc.ID)
}

func TestRequireRole_UsesPersistedActiveRole(t *testing.T) {
	r, store := newTestResolver()
	ctx := context.Background()

	store.PutAccount(domain.Account{ID: 1, Roles: []domain.Role{domain.RoleClient, domain.RoleCompanion}, ActiveRole: domain.RoleClient})

	_, err := r.RequireRole(ctx, 1, domain.RoleCompanion)
	assert.ErrorIs(t, err, domain.ErrRoleNotActive)

	_, err = r.RequireRole(ctx, 42, domain.RoleClient)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestApprovedCompanion(t *testing.T) {
	r, store := newTestResolver()
	ctx := context.Background()

	store.PutAccount(domain.Account{ID: 2, Roles: []domain.Role{domain.RoleClient}, ActiveRole: domain.RoleClient})
	store.PutApplication(domain.CompanionApplication{AccountID: 2, Review: domain.Review{Status: domain.ReviewPending}})

	_, err := r.ApprovedCompanion(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrCompanionNotApproved)

	_, err = r.ApprovedCompanion(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrCompanionNotApproved)

	store.PutAccount(domain.Account{ID: 3, Roles: []domain.Role{domain.RoleClient, domain.RoleCompanion}, ActiveRole: domain.RoleCompanion})
	store.PutApplication(domain.CompanionApplication{AccountID: 3, HourlyRate: 40, Review: domain.Review{Status: domain.ReviewApproved}})

	_, app, err := r.RequireApprovedCompanion(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 40.0, app.HourlyRate)
}
