package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/companion-booking/internal/domain"
)

func TestIssueAndParse(t *testing.T) {
	tokens := NewTokens("secret", "companion-booking", time.Hour)
	acc := &domain.Account{ID: 7, Roles: []domain.Role{domain.RoleClient, domain.RoleCompanion}, ActiveRole: domain.RoleCompanion}

	raw, expiresAt, err := tokens.Issue(acc)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.AccountID)
	assert.Equal(t, "companion", claims.ActiveRole)
	assert.Equal(t, []string{"client", "companion"}, claims.Roles)
}

func TestParseRejectsForeignSecretAndIssuer(t *testing.T) {
	acc := &domain.Account{ID: 1, Roles: []domain.Role{domain.RoleClient}, ActiveRole: domain.RoleClient}

	raw, _, err := NewTokens("other", "companion-booking", time.Hour).Issue(acc)
	require.NoError(t, err)
	_, err = NewTokens("secret", "companion-booking", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrBadToken)

	raw, _, err = NewTokens("secret", "someone-else", time.Hour).Issue(acc)
	require.NoError(t, err)
	_, err = NewTokens("secret", "companion-booking", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestParseRejectsExpired(t *testing.T) {
	tokens := NewTokens("secret", "companion-booking", time.Minute)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	raw, _, err := tokens.Issue(&domain.Account{ID: 1})
	require.NoError(t, err)

	_, err = NewTokens("secret", "companion-booking", time.Minute).Parse(raw)
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	c := Claims{AccountID: 1, RegisteredClaims: jwt.RegisteredClaims{Issuer: "companion-booking"}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokens("secret", "companion-booking", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestHashSecret(t *testing.T) {
	hash, err := HashSecret("AB1234567")
	require.NoError(t, err)
	assert.NotEqual(t, "AB1234567", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("AB1234567")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("AB7654321")))
}
