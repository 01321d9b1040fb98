package domain

import (
	"fmt"
	"time"
)

// Role represents an authorization role of an account
type Role string

const (
	RoleClient    Role = "client"
	RoleCompanion Role = "companion"
	RoleAdmin     Role = "admin"
)

// ParseRole converts a string into a known Role
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleClient, RoleCompanion, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// Account represents a single identity that may hold several roles
type Account struct {
	ID            int64
	Email         string
	DisplayName   string
	Roles         []Role
	ActiveRole    Role
	EmailVerified bool

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// HasRole returns true if the role is granted to the account
func (a *Account) HasRole(role Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsDeleted returns true if the account has been soft-deleted
func (a *Account) IsDeleted() bool {
	return a.DeletedAt != nil
}

// CurrentRole returns the active role after checking it is still granted
func (a *Account) CurrentRole() (Role, error) {
	if !a.HasRole(a.ActiveRole) {
		return "", fmt.Errorf("%w: active role %q", ErrRoleNotGranted, a.ActiveRole)
	}
	return a.ActiveRole, nil
}

// RequireActiveRole checks that the account currently acts as the given role
func (a *Account) RequireActiveRole(role Role) error {
	current, err := a.CurrentRole()
	if err != nil {
		return err
	}
	if current != role {
		return fmt.Errorf("%w: requires %s, active %s", ErrRoleNotActive, role, current)
	}
	return nil
}

// SwitchActiveRole makes a granted role the active one
func (a *Account) SwitchActiveRole(role Role) error {
	if _, err := ParseRole(string(role)); err != nil {
		return err
	}
	if !a.HasRole(role) {
		return fmt.Errorf("%w: %s", ErrRoleNotGranted, role)
	}
	a.ActiveRole = role
	return nil
}

// GrantRole appends a role; returns false if it was already granted
func (a *Account) GrantRole(role Role) bool {
	if a.HasRole(role) {
		return false
	}
	a.Roles = append(a.Roles, role)
	return true
}

// RoleStrings converts roles for storage
func RoleStrings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// RolesFromStrings converts stored values back into roles, skipping unknown entries
func RolesFromStrings(values []string) []Role {
	out := make([]Role, 0, len(values))
	for _, v := range values {
		if r, err := ParseRole(v); err == nil {
			out = append(out, r)
		}
	}
	return out
}
