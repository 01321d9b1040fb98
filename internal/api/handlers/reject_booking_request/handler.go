package reject_booking_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/service/bookingrequests"
)

const (
	msgInvalidRequestID = "некорректный ID запроса"
	msgNotFound         = "запрос на бронирование не найден"
	msgMissingAccountID = "отсутствует ID аккаунта"
)

type Handler struct {
	service BookingRequestService
	logger  Logger
}

func NewHandler(service BookingRequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-requests/{requestId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /booking-requests/{id}/reject - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	companionID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("POST /booking-requests/{id}/reject - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	result, err := h.service.Reject(r.Context(), requestID, companionID)
	if err != nil {
		switch {
		case errors.Is(err, bookingrequests.ErrRequestNotFound):
			h.logger.Warn("POST /booking-requests/{id}/reject - Not found: request_id=%d, companion_id=%d",
				requestID, companionID)
			handlers.RespondNotFound(w, msgNotFound)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("POST /booking-requests/{id}/reject - Rejected: request_id=%d, error=%v", requestID, err)

		default:
			h.logger.Error("POST /booking-requests/{id}/reject - Failed: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-requests/{id}/reject - Request rejected: request_id=%d, companion_id=%d",
		requestID, companionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
