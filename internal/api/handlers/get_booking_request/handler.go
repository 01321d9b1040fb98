package get_booking_request

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

// Handle GET /api/v1/booking-requests/{requestId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		h.logger.Warn("GET /booking-requests/{id} - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("GET /booking-requests/{id} - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	result, err := h.service.Get(r.Context(), requestID, accountID)
	if err != nil {
		switch {
		case errors.Is(err, bookingrequests.ErrRequestNotFound):
			h.logger.Warn("GET /booking-requests/{id} - Not found: request_id=%d, account_id=%d", requestID, accountID)
			handlers.RespondNotFound(w, msgNotFound)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("GET /booking-requests/{id} - Rejected: request_id=%d, error=%v", requestID, err)

		default:
			h.logger.Error("GET /booking-requests/{id} - Failed to get request: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /booking-requests/{id} - Request retrieved: request_id=%d, account_id=%d", requestID, accountID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
