package review_verification

import (
	"errors"
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/service/verification"
)

const (
	msgInvalidAccountID   = "некорректный ID аккаунта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDecision    = "решение должно быть approve или reject, для reject нужна причина"
	msgNotFound           = "верификация не найдена"
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

// Handle POST /api/v1/admin/verifications/{accountId}/review
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, err := handlers.PathInt64(r, "accountId")
	if err != nil {
		h.logger.Warn("POST /admin/verifications/{id}/review - Invalid account ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAccountID)
		return
	}

	reviewerID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/verifications/{id}/review - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req ReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/verifications/{id}/review - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /admin/verifications/{id}/review - Validation failed: %v", err)
		handlers.RespondUnprocessable(w, msgInvalidDecision)
		return
	}

	result, err := h.service.ReviewVerification(r.Context(), reviewerID, accountID, req.Approve(), req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrVerificationNotFound):
			h.logger.Warn("POST /admin/verifications/{id}/review - Not found: account_id=%d", accountID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, verification.ErrInvalidInput):
			handlers.RespondUnprocessable(w, msgInvalidDecision)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("POST /admin/verifications/{id}/review - Rejected: reviewer_id=%d, account_id=%d, error=%v",
				reviewerID, accountID, err)

		default:
			h.logger.Error("POST /admin/verifications/{id}/review - Failed: account_id=%d, error=%v", accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/verifications/{id}/review - Reviewed: account_id=%d, decision=%s, reviewer_id=%d",
		accountID, req.Decision, reviewerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
