package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/companion-booking/internal/usecase/get_available_slots"
)

const (
	msgInvalidCompanionID = "некорректный ID компаньона"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast         = "дата уже прошла"
	msgCompanionNotFound  = "компаньон не найден"
	msgMissingAccountID   = "отсутствует ID аккаунта"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companions/{companionId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companionID, err := handlers.PathInt64(r, "companionId")
	if err != nil {
		h.logger.Warn("GET /companions/{id}/available-slots - Invalid companion ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanionID)
		return
	}

	clientID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("GET /companions/{id}/available-slots - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /companions/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(clientID, companionID, dateStr)
	if err != nil {
		h.logger.Warn("GET /companions/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrCompanionNotFound):
			h.logger.Warn("GET /companions/{id}/available-slots - Companion not found: companion_id=%d", companionID)
			handlers.RespondNotFound(w, msgCompanionNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /companions/{id}/available-slots - Date in the past: date=%s", dateStr)
			handlers.RespondUnprocessable(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidCompanionID)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("GET /companions/{id}/available-slots - Rejected: client_id=%d, error=%v", clientID, err)

		default:
			h.logger.Error("GET /companions/{id}/available-slots - Failed to get slots: companion_id=%d, date=%s, error=%v",
				companionID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companions/{id}/available-slots - Slots retrieved successfully: companion_id=%d, date=%s, slots_count=%d",
		companionID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
