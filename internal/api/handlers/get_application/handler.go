package get_application

import (
	"errors"
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/service/verification"
)

const (
	msgMissingAccountID = "отсутствует ID аккаунта"
	msgNotFound         = "заявка не найдена"
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

// Handle GET /api/v1/me/companion-application
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("GET /me/companion-application - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	result, err := h.service.GetApplication(r.Context(), accountID)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrApplicationNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("GET /me/companion-application - Rejected: account_id=%d, error=%v", accountID, err)

		default:
			h.logger.Error("GET /me/companion-application - Failed: account_id=%d, error=%v", accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
