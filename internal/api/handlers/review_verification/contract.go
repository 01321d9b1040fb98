package review_verification

import (
	"context"

	"github.com/m04kA/companion-booking/internal/service/verification/models"
)

type VerificationService interface {
	ReviewVerification(ctx context.Context, reviewerID, accountID int64, approve bool, reason string) (*models.VerificationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
