package access

import (
	"context"

	"github.com/m04kA/companion-booking/internal/domain"
)

type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
}

type VerificationRepository interface {
	Get(ctx context.Context, accountID int64) (*domain.ClientVerification, error)
}

type ApplicationRepository interface {
	GetApprovedByAccount(ctx context.Context, accountID int64) (*domain.CompanionApplication, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
