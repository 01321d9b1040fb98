package list_companions

import (
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
)

const msgMissingAccountID = "отсутствует ID аккаунта"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companions?service=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("GET /companions - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	service := r.URL.Query().Get("service")

	// Каталог доступен только верифицированным клиентам
	result, err := h.service.ListCompanions(r.Context(), clientID, service)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /companions - Rejected: client_id=%d, service=%q, error=%v", clientID, service, err)
			return
		}
		h.logger.Error("GET /companions - Failed to list companions: client_id=%d, error=%v", clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /companions - Companions retrieved: client_id=%d, service=%q, count=%d",
		clientID, service, len(result.Companions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
