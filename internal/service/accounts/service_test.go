package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/companion-booking/internal/auth"
	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/internal/testutil/inmem"
)

func newTestService(t *testing.T) (*Service, *inmem.Store, *auth.Tokens) {
	t.Helper()
	store := inmem.NewStore()
	store.PutAccount(domain.Account{ID: 1, Email: "c@example.com", Roles: []domain.Role{domain.RoleClient}, ActiveRole: domain.RoleClient})
	store.PutAccount(domain.Account{ID: 2, Email: "both@example.com", Roles: []domain.Role{domain.RoleClient, domain.RoleCompanion}, ActiveRole: domain.RoleClient})
	tokens := auth.NewTokens("secret", "companion-booking", time.Hour)
	return NewService(store.Accounts(), tokens, inmem.NewTxManager(store), inmem.Logger{}), store, tokens
}

func TestSwitchActiveRole_NotGranted(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.SwitchActiveRole(context.Background(), 1, "companion")
	require.ErrorIs(t, err, domain.ErrRoleNotGranted)

	acc, _ := store.Account(1)
	assert.Equal(t, domain.RoleClient, acc.ActiveRole)
}

func TestSwitchActiveRole_PersistsAndIssuesToken(t *testing.T) {
	svc, store, tokens := newTestService(t)

	resp, err := svc.SwitchActiveRole(context.Background(), 2, "companion")
	require.NoError(t, err)
	assert.Equal(t, "companion", resp.Account.ActiveRole)

	acc, _ := store.Account(2)
	assert.Equal(t, domain.RoleCompanion, acc.ActiveRole)

	claims, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(2), claims.AccountID)
	assert.Equal(t, "companion", claims.ActiveRole)
}

func TestSwitchActiveRole_InvalidRole(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.SwitchActiveRole(context.Background(), 1, "superuser")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestGetMe(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp, err := svc.GetMe(context.Background(), 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"client", "companion"}, resp.Roles)

	_, err = svc.GetMe(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
