package list_verifications

import (
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
	"github.com/m04kA/companion-booking/internal/domain"
)

const (
	msgInvalidStatus    = "статус должен быть pending, approved или rejected"
	msgMissingAccountID = "отсутствует ID аккаунта"
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

// Handle GET /api/v1/admin/verifications?status=pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/verifications - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	// По умолчанию очередь на проверку
	status := domain.ReviewPending
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := domain.ParseReviewStatus(raw)
		if err != nil || parsed == domain.ReviewNotSubmitted {
			h.logger.Warn("GET /admin/verifications - Invalid status: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		status = parsed
	}

	result, err := h.service.ListVerifications(r.Context(), reviewerID, status)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /admin/verifications - Rejected: reviewer_id=%d, error=%v", reviewerID, err)
			return
		}
		h.logger.Error("GET /admin/verifications - Failed: reviewer_id=%d, error=%v", reviewerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/verifications - Retrieved: reviewer_id=%d, status=%s, count=%d",
		reviewerID, status, len(result.Verifications))
	handlers.RespondJSON(w, http.StatusOK, result)
}
