package review_application

import (
	"context"

	"github.com/m04kA/companion-booking/internal/service/verification/models"
)

type VerificationService interface {
	ReviewApplication(ctx context.Context, reviewerID, applicationID int64, approve bool, reason string) (*models.ApplicationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
