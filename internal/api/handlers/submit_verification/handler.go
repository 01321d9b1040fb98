package submit_verification

import (
	"errors"
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/service/verification"
	"github.com/m04kA/companion-booking/internal/service/verification/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные верификации: нужны полный адрес и документ"
	msgMissingAccountID   = "отсутствует ID аккаунта"
)

type Handler struct {
	service VerificationService
	logger  Logger
}

func NewHandler(service VerificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/me/verification
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("PUT /me/verification - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req models.SubmitVerificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /me/verification - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /me/verification - Validation failed: %v", err)
		handlers.RespondUnprocessable(w, msgInvalidInput)
		return
	}

	// Номер документа не логируем
	result, err := h.service.SubmitClientVerification(r.Context(), accountID, &req)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrInvalidInput):
			h.logger.Warn("PUT /me/verification - Invalid input: account_id=%d", accountID)
			handlers.RespondUnprocessable(w, msgInvalidInput)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("PUT /me/verification - Rejected: account_id=%d, error=%v", accountID, err)

		default:
			h.logger.Error("PUT /me/verification - Failed to submit: account_id=%d, error=%v", accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /me/verification - Submitted for review: account_id=%d", accountID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
