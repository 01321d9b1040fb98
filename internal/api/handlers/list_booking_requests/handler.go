package list_booking_requests

import (
	"errors"
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/service/bookingrequests"
	"github.com/m04kA/companion-booking/internal/service/bookingrequests/models"
)

const (
	msgInvalidQuery     = "некорректные параметры запроса"
	msgInvalidStatus    = "некорректный статус запроса"
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

// Handle GET /api/v1/booking-requests?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("GET /booking-requests - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req models.ListBookingRequestsRequest
	if err := handlers.DecodeQuery(r, &req); err != nil {
		h.logger.Warn("GET /booking-requests - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), accountID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookingrequests.ErrInvalidInput):
			h.logger.Warn("GET /booking-requests - Invalid status: account_id=%d, error=%v", accountID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("GET /booking-requests - Rejected: account_id=%d, error=%v", accountID, err)

		default:
			h.logger.Error("GET /booking-requests - Failed to list requests: account_id=%d, error=%v", accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /booking-requests - Requests retrieved: account_id=%d, count=%d", accountID, len(result.Requests))
	handlers.RespondJSON(w, http.StatusOK, result)
}
