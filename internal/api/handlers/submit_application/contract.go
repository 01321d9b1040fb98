package submit_application

import (
	"context"

	"github.com/m04kA/companion-booking/internal/service/verification/models"
)

type VerificationService interface {
	SubmitApplication(ctx context.Context, accountID int64, req *models.SubmitApplicationRequest) (*models.ApplicationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
