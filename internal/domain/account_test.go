package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRoles(t *testing.T) {
	acc := &Account{ID: 1, Roles: []Role{RoleClient}, ActiveRole: RoleClient}

	require.NoError(t, acc.RequireActiveRole(RoleClient))
	assert.ErrorIs(t, acc.RequireActiveRole(RoleCompanion), ErrRoleNotActive)

	assert.ErrorIs(t, acc.SwitchActiveRole(RoleCompanion), ErrRoleNotGranted)
	assert.ErrorIs(t, acc.SwitchActiveRole(Role("superuser")), ErrInvalidRole)

	assert.True(t, acc.GrantRole(RoleCompanion))
	assert.False(t, acc.GrantRole(RoleCompanion))
	assert.Equal(t, []Role{RoleClient, RoleCompanion}, acc.Roles)

	require.NoError(t, acc.SwitchActiveRole(RoleCompanion))
	assert.Equal(t, RoleCompanion, acc.ActiveRole)
}

func TestCurrentRoleRequiresGrant(t *testing.T) {
	acc := &Account{Roles: []Role{RoleClient}, ActiveRole: RoleAdmin}

	_, err := acc.CurrentRole()
	assert.ErrorIs(t, err, ErrRoleNotGranted)
	assert.ErrorIs(t, acc.RequireActiveRole(RoleAdmin), ErrRoleNotGranted)
}

func TestRolesFromStringsSkipsUnknown(t *testing.T) {
	roles := RolesFromStrings([]string{"client", "root", "companion"})
	assert.Equal(t, []Role{RoleClient, RoleCompanion}, roles)
	assert.Equal(t, []string{"client", "companion"}, RoleStrings(roles))
}
