package update_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/service/availability"
	"github.com/m04kA/companion-booking/internal/service/availability/models"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "некорректный слот: нужен день недели, интервал HH:MM и хотя бы одна услуга"
	msgSlotNotFound       = "слот не найден"
	msgTooManySlots       = "превышен лимит слотов на день недели"
	msgMissingAccountID   = "отсутствует ID аккаунта"
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

// Handle PUT /api/v1/companion/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := handlers.PathInt64(r, "slotId")
	if err != nil {
		h.logger.Warn("PUT /companion/slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	companionID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("PUT /companion/slots/{id} - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req models.SlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /companion/slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /companion/slots/{id} - Validation failed: %v", err)
		handlers.RespondUnprocessable(w, msgInvalidSlot)
		return
	}

	slot, err := h.service.UpdateSlot(r.Context(), companionID, slotID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrSlotNotFound):
			h.logger.Warn("PUT /companion/slots/{id} - Slot not found: slot_id=%d, companion_id=%d", slotID, companionID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, availability.ErrTooManySlots):
			handlers.RespondUnprocessable(w, msgTooManySlots)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("PUT /companion/slots/{id} - Rejected: slot_id=%d, error=%v", slotID, err)

		default:
			h.logger.Error("PUT /companion/slots/{id} - Failed to update slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /companion/slots/{id} - Slot updated: slot_id=%d, companion_id=%d", slotID, companionID)
	handlers.RespondJSON(w, http.StatusOK, slot)
}
