package pending_approvals

import (
	"net/http"

	"github.com/m04kA/companion-booking/internal/api/handlers"
	"github.com/m04kA/companion-booking/internal/api/middleware"
)

const msgMissingAccountID = "отсутствует ID аккаунта"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companion/pending-approvals
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companionID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		h.logger.Warn("GET /companion/pending-approvals - Missing account ID")
		handlers.RespondUnauthorized(w, msgMissingAccountID)
		return
	}

	result, err := h.service.ListPendingApprovals(r.Context(), companionID)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /companion/pending-approvals - Rejected: companion_id=%d, error=%v", companionID, err)
			return
		}
		h.logger.Error("GET /companion/pending-approvals - Failed: companion_id=%d, error=%v", companionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /companion/pending-approvals - Retrieved: companion_id=%d, bookings=%d, requests=%d",
		companionID, len(result.Bookings), len(result.Requests))
	handlers.RespondJSON(w, http.StatusOK, result)
}
