package get_me

import (
	"context"

	"github.com/m04kA/companion-booking/internal/service/accounts/models"
)

type AccountService interface {
	GetMe(ctx context.Context, accountID int64) (*models.AccountResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
