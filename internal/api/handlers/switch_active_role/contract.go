package switch_active_role

import (
	"context"

	"github.com/m04kA/companion-booking/internal/service/accounts/models"
)

type AccountService interface {
	SwitchActiveRole(ctx context.Context, accountID int64, role string) (*models.SwitchRoleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
