package list_favorites

import (
	"context"

	"github.com/m04kA/companion-booking/internal/service/favorites/models"
)

type FavoriteService interface {
	List(ctx context.Context, clientID int64) (*models.FavoriteListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
