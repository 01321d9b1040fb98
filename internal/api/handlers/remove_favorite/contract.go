package remove_favorite

import "context"

type FavoriteService interface {
	Remove(ctx context.Context, clientID, companionID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
