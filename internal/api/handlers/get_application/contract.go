package get_application

import (
	"context"

	"github.com/m04kA/companion-booking/internal/service/verification/models"
)

type VerificationService interface {
	GetApplication(ctx context.Context, accountID int64) (*models.ApplicationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
