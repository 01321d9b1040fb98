package switch_active_role

import (
	"errors"
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/service/accounts"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRole        = "роль должна быть client, companion или admin"
	msgMissingAccountID   = "отсутствует ID аккаунта"
	msgAccountNotFound    = "аккаунт не найден"
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

// Handle POST /api/v1/me/active-role
// Возвращает новый токен: активная роль в нем только информационная
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("POST /me/active-role - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req SwitchRoleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /me/active-role - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /me/active-role - Validation failed: %v", err)
		handlers.RespondUnprocessable(w, msgInvalidRole)
		return
	}

	result, err := h.service.SwitchActiveRole(r.Context(), accountID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrAccountNotFound):
			h.logger.Warn("POST /me/active-role - Account not found: account_id=%d", accountID)
			handlers.RespondUnauthorized(w, msgAccountNotFound)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("POST /me/active-role - Rejected: account_id=%d, role=%s, error=%v", accountID, req.Role, err)

		default:
			h.logger.Error("POST /me/active-role - Failed to switch role: account_id=%d, error=%v", accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /me/active-role - Active role switched: account_id=%d, role=%s", accountID, req.Role)
	handlers.RespondJSON(w, http.StatusOK, result)
}
