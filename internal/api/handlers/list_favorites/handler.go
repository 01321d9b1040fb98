package list_favorites

import (
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
)

const msgMissingAccountID = "отсутствует ID аккаунта"

type Handler struct {
	service FavoriteService
	logger  Logger
}

func NewHandler(service FavoriteService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/favorites
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("GET /favorites - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	result, err := h.service.List(r.Context(), clientID)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /favorites - Rejected: client_id=%d, error=%v", clientID, err)
			return
		}
		h.logger.Error("GET /favorites - Failed to list favorites: client_id=%d, error=%v", clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /favorites - Favorites retrieved: client_id=%d, count=%d", clientID, len(result.Favorites))
	handlers.RespondJSON(w, http.StatusOK, result)
}
