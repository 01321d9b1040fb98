package submit_verification

import (
	"context"

	"github.com/m04kA/companion-booking/internal/service/verification/models"
)

type VerificationService interface {
	SubmitClientVerification(ctx context.Context, accountID int64, req *models.SubmitVerificationRequest) (*models.VerificationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
