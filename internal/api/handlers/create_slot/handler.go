package create_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/service/availability"
	"github.com/m04kA/companion-booking/internal/service/availability/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "некорректный слот: нужен день недели, интервал HH:MM и хотя бы одна услуга"
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

// Handle POST /api/v1/companion/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companionID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("POST /companion/slots - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req models.SlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /companion/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /companion/slots - Validation failed: %v", err)
		handlers.RespondUnprocessable(w, msgInvalidSlot)
		return
	}

	slot, err := h.service.AddSlot(r.Context(), companionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrTooManySlots):
			h.logger.Warn("POST /companion/slots - Too many slots: companion_id=%d, day=%s", companionID, req.DayOfWeek)
			handlers.RespondUnprocessable(w, msgTooManySlots)

		// Пересечение с существующим слотом отдается как 409 с конфликтующим слотом
		case handlers.RespondDomainError(w, err):
			h.logger.Warn("POST /companion/slots - Rejected: companion_id=%d, error=%v", companionID, err)

		default:
			h.logger.Error("POST /companion/slots - Failed to add slot: companion_id=%d, error=%v", companionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /companion/slots - Slot created: slot_id=%d, companion_id=%d", slot.ID, companionID)
	handlers.RespondJSON(w, http.StatusCreated, slot)
}
