package delete_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/service/availability"
)

const (
	msgInvalidSlotID    = "некорректный ID слота"
	msgSlotNotFound     = "слот не найден"
	msgMissingAccountID = "отсутствует ID аккаунта"
)

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

// Handle DELETE /api/v1/companion/slots/{slotId}
// Существующие бронирования при удалении слота не отменяются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathInt64(r, "slotId")
	if err != nil {
		h.logger.Warn("DELETE /companion/slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	companionID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /companion/slots/{id} - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	if err := h.service.RemoveSlot(r.Context(), companionID, slotID); err != nil {
		switch {
		case errors.Is(err, availability.ErrSlotNotFound):
			h.logger.Warn("DELETE /companion/slots/{id} - Slot not found: slot_id=%d, companion_id=%d", slotID, companionID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("DELETE /companion/slots/{id} - Rejected: slot_id=%d, error=%v", slotID, err)

		default:
			h.logger.Error("DELETE /companion/slots/{id} - Failed to remove slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /companion/slots/{id} - Slot removed: slot_id=%d, companion_id=%d", slotID, companionID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
