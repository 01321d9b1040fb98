package list_companions

import (
	"context"

	"github.com/m04kA/companion-booking/internal/service/catalog/models"
)

type CatalogService interface {
	ListCompanions(ctx context.Context, clientID int64, service string) (*models.CompanionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
