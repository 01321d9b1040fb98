package get_me

import (
	"errors"
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/service/accounts"
)

const (
	msgMissingAccountID = "отсутствует ID аккаунта"
	msgAccountNotFound  = "аккаунт не найден"
)

type Handler struct {
	service AccountService
	logger  Logger
}

func NewHandler(service AccountService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("GET /me - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	account, err := h.service.GetMe(r.Context(), accountID)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrAccountNotFound):
			h.logger.Warn("GET /me - Account not found: account_id=%d", accountID)
			handlers.RespondUnauthorized(w, msgAccountNotFound)

		default:
			h.logger.Error("GET /me - Failed to get account: account_id=%d, error=%v", accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, account)
}
