package list_my_slots

import (
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
)

const msgMissingAccountID = "отсутствует ID аккаунта"

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companion/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companionID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("GET /companion/slots - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	result, err := h.service.ListMySlots(r.Context(), companionID)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /companion/slots - Rejected: companion_id=%d, error=%v", companionID, err)
			return
		}
		h.logger.Error("GET /companion/slots - Failed to list slots: companion_id=%d, error=%v", companionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /companion/slots - Slots retrieved: companion_id=%d, count=%d", companionID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
