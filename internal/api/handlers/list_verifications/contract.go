package list_verifications

import (
	"context"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/internal/service/verification/models"
)

type VerificationService interface {
	ListVerifications(ctx context.Context, reviewerID int64, status domain.ReviewStatus) (*models.VerificationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
