package review_verification

const (
	decisionApprove = "approve"
	decisionReject  = "reject"
)

// ReviewRequest HTTP request model
type ReviewRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	Reason   string `json:"reason" validate:"max=500"`
}

// Approve решение в виде флага для сервиса
func (r *ReviewRequest) Approve() bool {
	return r.Decision == decisionApprove
}
