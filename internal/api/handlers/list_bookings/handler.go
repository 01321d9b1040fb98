package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/service/bookings"
	"github.com/m04kA/companion-booking/internal/service/bookings/models"
)

const (
	msgInvalidQuery     = "некорректные параметры запроса"
	msgInvalidFilter    = "некорректный фильтр: ожидается status из списка и даты в формате YYYY-MM-DD"
	msgMissingAccountID = "отсутствует ID аккаунта"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?status=&startDate=&endDate=&includeCancelled=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req models.ListBookingsRequest
	if err := handlers.DecodeQuery(r, &req); err != nil {
		h.logger.Warn("GET /bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	// Сторона (client или companion) определяется активной ролью аккаунта
	result, err := h.service.List(r.Context(), accountID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: account_id=%d, error=%v", accountID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("GET /bookings - Rejected: account_id=%d, error=%v", accountID, err)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: account_id=%d, error=%v", accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: account_id=%d, count=%d",
		accountID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
