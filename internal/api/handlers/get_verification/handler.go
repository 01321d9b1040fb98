package get_verification

import (
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
)

const msgMissingAccountID = "отсутствует ID аккаунта"

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

// Handle GET /api/v1/me/verification
// Без отправленных данных возвращается статус not_submitted
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("GET /me/verification - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	result, err := h.service.GetClientVerification(r.Context(), accountID)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /me/verification - Rejected: account_id=%d, error=%v", accountID, err)
			return
		}
		h.logger.Error("GET /me/verification - Failed: account_id=%d, error=%v", accountID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
