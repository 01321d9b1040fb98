package remove_favorite

import (
	"errors"
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/service/favorites"
)

const (
	msgInvalidCompanionID = "некорректный ID компаньона"
	msgNotFound           = "компаньона нет в избранном"
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

// Handle DELETE /api/v1/favorites/{companionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companionID, err := handlers.PathInt64(r, "companionId")
	if err != nil {
		h.logger.Warn("DELETE /favorites/{id} - Invalid companion ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanionID)
		return
	}

	clientID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /favorites/{id} - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	if err := h.service.Remove(r.Context(), clientID, companionID); err != nil {
		switch {
		case errors.Is(err, favorites.ErrFavoriteNotFound):
			h.logger.Warn("DELETE /favorites/{id} - Not in favorites: client_id=%d, companion_id=%d", clientID, companionID)
			handlers.RespondNotFound(w, msgNotFound)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("DELETE /favorites/{id} - Rejected: client_id=%d, error=%v", clientID, err)

		default:
			h.logger.Error("DELETE /favorites/{id} - Failed to remove favorite: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /favorites/{id} - Favorite removed: client_id=%d, companion_id=%d", clientID, companionID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
