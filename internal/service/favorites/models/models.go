package models

import (
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
)

// FavoriteResponse компаньон в избранном клиента
type FavoriteResponse struct {
	CompanionID int64     `json:"companionId"`
	DisplayName string    `json:"displayName"`
	AddedAt     time.Time `json:"addedAt"`
}

// FavoriteListResponse избранное клиента
type FavoriteListResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
}

// FromDomainFavorites собирает ответ, пропуская удаленные аккаунты
func FromDomainFavorites(list []*domain.Favorite, accounts map[int64]*domain.Account) *FavoriteListResponse {
	resp := &FavoriteListResponse{Favorites: make([]FavoriteResponse, 0, len(list))}
	for _, f := range list {
		acc, ok := accounts[f.CompanionID]
		if !ok || acc.IsDeleted() {
			continue
		}
		resp.Favorites = append(resp.Favorites, FavoriteResponse{
			CompanionID: f.CompanionID,
			DisplayName: acc.DisplayName,
			AddedAt:     f.CreatedAt,
		})
	}
	return resp
}
