package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/companion-booking/internal/domain"
)

var (
	ErrBadToken  = errors.New("auth: invalid token")
	ErrSignToken = errors.New("auth: failed to sign token")
)

// Claims capability token. ActiveRole is informational for the caller:
// the server always re-reads the persisted active role
type Claims struct {
	AccountID  int64    `json:"aid"`
	ActiveRole string   `json:"role"`
	Roles      []string `json:"roles"`
	jwt.RegisteredClaims
}

// Tokens выпускает и проверяет HS256 токены
type Tokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret, issuer string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue подписывает токен, отражающий текущие роли аккаунта
func (t *Tokens) Issue(account *domain.Account) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)

	c := Claims{
		AccountID:  account.ID,
		ActiveRole: string(account.ActiveRole),
		Roles:      domain.RoleStrings(account.Roles),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(account.ID, 10),
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrSignToken, err)
	}
	return signed, expiresAt, nil
}

// Parse проверяет подпись, срок действия и издателя
func (t *Tokens) Parse(raw string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(tok *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return t.secret, nil
	},
		jwt.WithIssuer(t.issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
	}

	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || c.AccountID <= 0 {
		return nil, ErrBadToken
	}
	return c, nil
}
