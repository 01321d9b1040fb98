package list_applications

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

// Handle GET /api/v1/admin/applications?status=pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("GET /admin/applications - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	// По умолчанию очередь на проверку
	status := domain.ReviewPending
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := domain.ParseReviewStatus(raw)
		if err != nil || parsed == domain.ReviewNotSubmitted {
			h.logger.Warn("GET /admin/applications - Invalid status: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		status = parsed
	}

	result, err := h.service.ListApplications(r.Context(), reviewerID, status)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /admin/applications - Rejected: reviewer_id=%d, error=%v", reviewerID, err)
			return
		}
		h.logger.Error("GET /admin/applications - Failed: reviewer_id=%d, error=%v", reviewerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/applications - Retrieved: reviewer_id=%d, status=%s, count=%d",
		reviewerID, status, len(result.Applications))
	handlers.RespondJSON(w, http.StatusOK, result)
}
