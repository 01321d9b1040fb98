package accept_booking_request

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	acceptRequest "github.com/m04kA/companion-booking/internal/usecase/accept_booking_request"
	createBooking "github.com/m04kA/companion-booking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestID   = "некорректный ID запроса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgNotFound           = "запрос на бронирование не найден"
	msgMissingAccountID   = "отсутствует ID аккаунта"
	msgInvalidBookingDate = "дата запроса уже прошла"
	msgTooLateToBook      = "время начала уже прошло"
	msgInvalidDuration    = "длительность бронирования должна быть от 30 минут до 12 часов"
	msgInvalidInput       = "некорректные данные запроса на бронирование"
)

type Handler struct {
	useCase AcceptBookingRequestUseCase
	logger  Logger
}

func NewHandler(useCase AcceptBookingRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-requests/{requestId}/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /booking-requests/{id}/accept - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	companionID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("POST /booking-requests/{id}/accept - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req AcceptRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /booking-requests/{id}/accept - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(requestID, companionID)
	if err != nil {
		h.logger.Warn("POST /booking-requests/{id}/accept - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Запрос и бронирование фиксируются в одной транзакции
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, acceptRequest.ErrRequestNotFound):
			h.logger.Warn("POST /booking-requests/{id}/accept - Not found: request_id=%d, companion_id=%d",
				requestID, companionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondUnprocessable(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			handlers.RespondUnprocessable(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidDuration):
			handlers.RespondUnprocessable(w, msgInvalidDuration)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /booking-requests/{id}/accept - Invalid input: request_id=%d, error=%v", requestID, err)
			handlers.RespondUnprocessable(w, msgInvalidInput)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("POST /booking-requests/{id}/accept - Rejected: request_id=%d, companion_id=%d, error=%v",
				requestID, companionID, err)

		default:
			h.logger.Error("POST /booking-requests/{id}/accept - Failed: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-requests/{id}/accept - Request accepted: request_id=%d, booking_id=%d",
		requestID, result.Booking.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
