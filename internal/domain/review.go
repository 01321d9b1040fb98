package domain

import (
	"fmt"
	"strings"
	"time"
)

// ReviewStatus is the status of a reviewed submission (client verification or companion application)
type ReviewStatus string

const (
	ReviewNotSubmitted ReviewStatus = "not_submitted"
	ReviewPending      ReviewStatus = "pending"
	ReviewApproved     ReviewStatus = "approved"
	ReviewRejected     ReviewStatus = "rejected"
)

// ParseReviewStatus converts a string into a ReviewStatus
func ParseReviewStatus(s string) (ReviewStatus, error) {
	switch st := ReviewStatus(s); st {
	case ReviewNotSubmitted, ReviewPending, ReviewApproved, ReviewRejected:
		return st, nil
	default:
		return "", fmt.Errorf("domain: invalid review status %q", s)
	}
}

// Review holds the reviewer side of a submission
type Review struct {
	Status          ReviewStatus
	ReviewedBy      *int64
	RejectionReason *string
	SubmittedAt     *time.Time
	ReviewedAt      *time.Time
}

// Submit moves not_submitted/rejected -> pending
func (r *Review) Submit(now time.Time) error {
	switch r.Status {
	case ReviewNotSubmitted, ReviewRejected, "":
		r.Status = ReviewPending
		r.ReviewedBy = nil
		r.RejectionReason = nil
		r.ReviewedAt = nil
		r.SubmittedAt = &now
		return nil
	case ReviewPending:
		return ErrAlreadyPending
	case ReviewApproved:
		return ErrAlreadyApproved
	default:
		return &InvalidTransitionError{From: string(r.Status), To: string(ReviewPending)}
	}
}

// Approve moves pending -> approved
func (r *Review) Approve(reviewerID int64, now time.Time) error {
	if r.Status != ReviewPending {
		return fmt.Errorf("%w: %w", ErrNotPendingReview,
			&InvalidTransitionError{From: string(r.Status), To: string(ReviewApproved)})
	}
	r.Status = ReviewApproved
	r.ReviewedBy = &reviewerID
	r.RejectionReason = nil
	r.ReviewedAt = &now
	return nil
}

// Reject moves pending -> rejected with a reason
func (r *Review) Reject(reviewerID int64, reason string, now time.Time) error {
	if r.Status != ReviewPending {
		return fmt.Errorf("%w: %w", ErrNotPendingReview,
			&InvalidTransitionError{From: string(r.Status), To: string(ReviewRejected)})
	}
	reason = strings.TrimSpace(reason)
	r.Status = ReviewRejected
	r.ReviewedBy = &reviewerID
	r.RejectionReason = &reason
	r.ReviewedAt = &now
	return nil
}

// Address is the postal address a client submits for verification
type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// IsComplete returns true if every required address field is present
func (a Address) IsComplete() bool {
	return strings.TrimSpace(a.Line1) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.PostalCode) != "" &&
		strings.TrimSpace(a.Country) != ""
}

// ClientVerification is the verification record of a client account
type ClientVerification struct {
	AccountID int64
	Address   Address

	GovernmentIDType        string
	GovernmentIDNumberHash  string
	GovernmentIDDocumentURI string

	Review

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewClientVerification returns an empty not_submitted record
func NewClientVerification(accountID int64) *ClientVerification {
	return &ClientVerification{
		AccountID: accountID,
		Review:    Review{Status: ReviewNotSubmitted},
	}
}

// CanBrowseOrBook reports whether the client may browse companions and book
func CanBrowseOrBook(v *ClientVerification) bool {
	return v != nil && v.Status == ReviewApproved && v.Address.IsComplete()
}

// CompanionApplication is a request to be granted the companion role
type CompanionApplication struct {
	ID        int64
	AccountID int64

	LegalName    string
	DateOfBirth  time.Time
	Phone        string
	City         string
	Bio          string
	DocumentURIs []string
	PhotoURIs    []string

	ServicesOffered ServiceTags
	Languages       []string
	HourlyRate      float64

	Review

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanPublishAvailabilityOrAppearInCatalog reports whether the companion may publish slots and be listed
func CanPublishAvailabilityOrAppearInCatalog(app *CompanionApplication) bool {
	return app != nil && app.Status == ReviewApproved
}

// IsTerminal returns true once a reviewer has decided the application
func (a *CompanionApplication) IsTerminal() bool {
	return a.Status == ReviewApproved || a.Status == ReviewRejected
}
