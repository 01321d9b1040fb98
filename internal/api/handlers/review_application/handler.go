package review_application

import (
	"errors"
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/service/verification"
)

const (
	msgInvalidApplicationID = "некорректный ID заявки"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDecision      = "решение должно быть approve или reject, для reject нужна причина"
	msgNotFound             = "заявка не найдена"
	msgMissingAccountID     = "отсутствует ID аккаунта"
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

// Handle POST /api/v1/admin/applications/{applicationId}/review
// Одобрение выдает аккаунту роль companion в той же транзакции
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	applicationID, err := handlers.PathInt64(r, "applicationId")
	if err != nil {
		h.logger.Warn("POST /admin/applications/{id}/review - Invalid application ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidApplicationID)
		return
	}

	reviewerID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/applications/{id}/review - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	var req ReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/applications/{id}/review - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /admin/applications/{id}/review - Validation failed: %v", err)
		handlers.RespondUnprocessable(w, msgInvalidDecision)
		return
	}

	result, err := h.service.ReviewApplication(r.Context(), reviewerID, applicationID, req.Approve(), req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrApplicationNotFound):
			h.logger.Warn("POST /admin/applications/{id}/review - Not found: application_id=%d", applicationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, verification.ErrInvalidInput):
			handlers.RespondUnprocessable(w, msgInvalidDecision)

		case handlers.RespondDomainError(w, err):
			h.logger.Warn("POST /admin/applications/{id}/review - Rejected: reviewer_id=%d, application_id=%d, error=%v",
				reviewerID, applicationID, err)

		default:
			h.logger.Error("POST /admin/applications/{id}/review - Failed: application_id=%d, error=%v", applicationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/applications/{id}/review - Reviewed: application_id=%d, decision=%s, reviewer_id=%d",
		applicationID, req.Decision, reviewerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
