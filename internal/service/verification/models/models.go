package models

import (
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
)

// Request модели

// AddressRequest почтовый адрес клиента
type AddressRequest struct {
	Line1      string `json:"line1" validate:"required,max=255"`
	Line2      string `json:"line2" validate:"max=255"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"max=100"`
	PostalCode string `json:"postalCode" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,max=100"`
}

// ToDomain конвертирует адрес в domain модель
func (a AddressRequest) ToDomain() domain.Address {
	return domain.Address{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// SubmitVerificationRequest данные клиента для верификации
type SubmitVerificationRequest struct {
	Address                 AddressRequest `json:"address" validate:"required"`
	GovernmentIDType        string         `json:"governmentIdType" validate:"required,max=50"`
	GovernmentIDNumber      string         `json:"governmentIdNumber" validate:"required,max=64"`
	GovernmentIDDocumentURI string         `json:"governmentIdDocumentUri" validate:"required,max=1024"`
}

// SubmitApplicationRequest заявка на роль компаньона
type SubmitApplicationRequest struct {
	LegalName       string   `json:"legalName" validate:"required,max=255"`
	DateOfBirth     string   `json:"dateOfBirth" validate:"required"` // "1995-04-12"
	Phone           string   `json:"phone" validate:"required,max=32"`
	City            string   `json:"city" validate:"required,max=100"`
	Bio             string   `json:"bio" validate:"max=2000"`
	DocumentURIs    []string `json:"documentUris" validate:"required,min=1,dive,required"`
	PhotoURIs       []string `json:"photoUris" validate:"dive,required"`
	ServicesOffered []string `json:"servicesOffered" validate:"required,min=1"`
	Languages       []string `json:"languages"`
	HourlyRate      float64  `json:"hourlyRate" validate:"gt=0"`
}

// ReviewRequest решение администратора
type ReviewRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// Response модели

// ReviewResponse состояние проверки
type ReviewResponse struct {
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
}

// VerificationResponse статус верификации клиента. Номер документа не возвращается
type VerificationResponse struct {
	AccountID               int64          `json:"accountId"`
	Address                 AddressRequest `json:"address"`
	GovernmentIDType        string         `json:"governmentIdType,omitempty"`
	GovernmentIDDocumentURI string         `json:"governmentIdDocumentUri,omitempty"`
	CanBrowseOrBook         bool           `json:"canBrowseOrBook"`
	ReviewResponse
}

// ApplicationResponse заявка компаньона
type ApplicationResponse struct {
	ID              int64    `json:"id"`
	AccountID       int64    `json:"accountId"`
	LegalName       string   `json:"legalName"`
	DateOfBirth     string   `json:"dateOfBirth"`
	Phone           string   `json:"phone"`
	City            string   `json:"city"`
	Bio             string   `json:"bio"`
	DocumentURIs    []string `json:"documentUris"`
	PhotoURIs       []string `json:"photoUris"`
	ServicesOffered []string `json:"servicesOffered"`
	Languages       []string `json:"languages"`
	HourlyRate      float64  `json:"hourlyRate"`
	ReviewResponse
	CreatedAt time.Time `json:"createdAt"`
}

type VerificationListResponse struct {
	Verifications []VerificationResponse `json:"verifications"`
}

type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
}

func fromDomainReview(r domain.Review) ReviewResponse {
	return ReviewResponse{
		Status:          string(r.Status),
		RejectionReason: r.RejectionReason,
		SubmittedAt:     r.SubmittedAt,
		ReviewedAt:      r.ReviewedAt,
	}
}

// FromDomainVerification конвертирует domain модель в DTO
func FromDomainVerification(v *domain.ClientVerification) *VerificationResponse {
	if v == nil {
		return nil
	}
	return &VerificationResponse{
		AccountID: v.AccountID,
		Address: AddressRequest{
			Line1:      v.Address.Line1,
			Line2:      v.Address.Line2,
			City:       v.Address.City,
			State:      v.Address.State,
			PostalCode: v.Address.PostalCode,
			Country:    v.Address.Country,
		},
		GovernmentIDType:        v.GovernmentIDType,
		GovernmentIDDocumentURI: v.GovernmentIDDocumentURI,
		CanBrowseOrBook:         domain.CanBrowseOrBook(v),
		ReviewResponse:          fromDomainReview(v.Review),
	}
}

// FromDomainApplication конвертирует domain модель в DTO
func FromDomainApplication(a *domain.CompanionApplication) *ApplicationResponse {
	if a == nil {
		return nil
	}
	return &ApplicationResponse{
		ID:              a.ID,
		AccountID:       a.AccountID,
		LegalName:       a.LegalName,
		DateOfBirth:     a.DateOfBirth.Format(domain.DateFormat),
		Phone:           a.Phone,
		City:            a.City,
		Bio:             a.Bio,
		DocumentURIs:    nonNil(a.DocumentURIs),
		PhotoURIs:       nonNil(a.PhotoURIs),
		ServicesOffered: a.ServicesOffered.Strings(),
		Languages:       nonNil(a.Languages),
		HourlyRate:      a.HourlyRate,
		ReviewResponse:  fromDomainReview(a.Review),
		CreatedAt:       a.CreatedAt,
	}
}

func FromDomainVerificationList(list []*domain.ClientVerification) *VerificationListResponse {
	resp := &VerificationListResponse{Verifications: make([]VerificationResponse, 0, len(list))}
	for _, v := range list {
		resp.Verifications = append(resp.Verifications, *FromDomainVerification(v))
	}
	return resp
}

func FromDomainApplicationList(list []*domain.CompanionApplication) *ApplicationListResponse {
	resp := &ApplicationListResponse{Applications: make([]ApplicationResponse, 0, len(list))}
	for _, a := range list {
		resp.Applications = append(resp.Applications, *FromDomainApplication(a))
	}
	return resp
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
