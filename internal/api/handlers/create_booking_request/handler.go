package create_booking_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/service/bookingrequests"
	"github.com/m04kA/companion-booking/internal/service/bookingrequests/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные запроса на бронирование"
	msgInvalidDate        = "дата запроса должна быть в формате YYYY-MM-DD и не в прошлом"
	msgMissingAccountID   = "отсутствует ID аккаунта"
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

// Handle POST /api/v1/booking-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("POST /booking-requests - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req models.CreateBookingRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /booking-requests - Validation failed: %v", err)
		handlers.RespondUnprocessable(w, msgInvalidInput)
		return
	}

	result, err := h.service.Create(r.Context(), clientID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookingrequests.ErrInvalidDate):
			h.logger.Warn("POST /booking-requests - Invalid date: client_id=%d, date=%s", clientID, req.RequestedDate)
			handlers.RespondUnprocessable(w, msgInvalidDate)

		case errors.Is(err, bookingrequests.ErrInvalidInput):
			h.logger.Warn("POST /booking-requests - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondUnprocessable(w, msgInvalidInput)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("POST /booking-requests - Rejected: client_id=%d, companion_id=%d, error=%v",
				clientID, req.CompanionID, err)

		default:
			h.logger.Error("POST /booking-requests - Failed to create request: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-requests - Request created: request_id=%d, client_id=%d, companion_id=%d",
		result.ID, clientID, req.CompanionID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
