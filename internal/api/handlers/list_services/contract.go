package list_services

import "github.com/m04kA/companion-booking/internal/service/catalog/models"

type CatalogService interface {
	ListServices() *models.ServicesResponse
}

type Logger interface {
	Info(format string, v ...interface{})
}
