package get_companion_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/service/catalog"
)

const (
	msgInvalidCompanionID = "некорректный ID компаньона"
	msgCompanionNotFound  = "компаньон не найден"
	msgMissingAccountID   = "отсутствует ID аккаунта"
)

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

// Handle GET /api/v1/companions/{companionId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companionID, err := handlers.PathInt64(r, "companionId")
	if err != nil {
		h.logger.Warn("GET /companions/{id}/slots - Invalid companion ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanionID)
		return
	}

	clientID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("GET /companions/{id}/slots - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	result, err := h.service.GetCompanionSlots(r.Context(), clientID, companionID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrCompanionNotFound):
			h.logger.Warn("GET /companions/{id}/slots - Companion not found: companion_id=%d", companionID)
			handlers.RespondNotFound(w, msgCompanionNotFound)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("GET /companions/{id}/slots - Rejected: client_id=%d, error=%v", clientID, err)

		default:
			h.logger.Error("GET /companions/{id}/slots - Failed: companion_id=%d, error=%v", companionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companions/{id}/slots - Slots retrieved: companion_id=%d, count=%d", companionID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
