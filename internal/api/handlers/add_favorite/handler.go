package add_favorite

import (
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
)

const (
	msgInvalidCompanionID = "некорректный ID компаньона"
	msgMissingAccountID   = "отсутствует ID аккаунта"
)

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

// Handle PUT /api/v1/favorites/{companionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companionID, err := handlers.PathInt64(r, "companionId")
	if err != nil {
		h.logger.Warn("PUT /favorites/{id} - Invalid companion ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanionID)
		return
	}

	clientID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("PUT /favorites/{id} - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	if err := h.service.Add(r.Context(), clientID, companionID); err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("PUT /favorites/{id} - Rejected: client_id=%d, companion_id=%d, error=%v",
				clientID, companionID, err)
			return
		}
		h.logger.Error("PUT /favorites/{id} - Failed to add favorite: client_id=%d, error=%v", clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /favorites/{id} - Favorite added: client_id=%d, companion_id=%d", clientID, companionID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
