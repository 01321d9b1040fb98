package models

import (
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
)

// AccountResponse ответ с данными аккаунта
type AccountResponse struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"displayName"`
	Roles         []string  `json:"roles"`
	ActiveRole    string    `json:"activeRole"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SwitchRoleResponse аккаунт после смены роли и новый токен
type SwitchRoleResponse struct {
	Account   AccountResponse `json:"account"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// FromDomainAccount конвертирует domain модель в DTO
func FromDomainAccount(a *domain.Account) *AccountResponse {
	if a == nil {
		return nil
	}
	return &AccountResponse{
		ID:            a.ID,
		Email:         a.Email,
		DisplayName:   a.DisplayName,
		Roles:         domain.RoleStrings(a.Roles),
		ActiveRole:    string(a.ActiveRole),
		EmailVerified: a.EmailVerified,
		CreatedAt:     a.CreatedAt,
	}
}
