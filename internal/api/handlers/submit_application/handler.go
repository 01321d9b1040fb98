package submit_application

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
	msgInvalidInput       = "некорректная заявка: проверьте дату рождения, услуги и ставку"
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

// Handle PUT /api/v1/me/companion-application
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("PUT /me/companion-application - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req models.SubmitApplicationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /me/companion-application - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /me/companion-application - Validation failed: %v", err)
		handlers.RespondUnprocessable(w, msgInvalidInput)
		return
	}

	result, err := h.service.SubmitApplication(r.Context(), accountID, &req)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrInvalidInput):
			h.logger.Warn("PUT /me/companion-application - Invalid input: account_id=%d, error=%v", accountID, err)
			handlers.RespondUnprocessable(w, msgInvalidInput)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("PUT /me/companion-application - Rejected: account_id=%d, error=%v", accountID, err)

		default:
			h.logger.Error("PUT /me/companion-application - Failed to submit: account_id=%d, error=%v", accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /me/companion-application - Submitted for review: account_id=%d, application_id=%d",
		accountID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
