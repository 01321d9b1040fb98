package models

import (
	"github.com/m04kA/companion-booking/internal/domain"
)

// ServicesResponse закрытый каталог услуг
type ServicesResponse struct {
	Services []string `json:"services"`
}

// CompanionResponse карточка компаньона в каталоге
type CompanionResponse struct {
	ID              int64    `json:"id"`
	DisplayName     string   `json:"displayName"`
	City            string   `json:"city"`
	Bio             string   `json:"bio"`
	ServicesOffered []string `json:"servicesOffered"`
	Languages       []string `json:"languages"`
	HourlyRate      float64  `json:"hourlyRate"`
	PhotoURIs       []string `json:"photoUris"`
}

// CompanionListResponse список компаньонов
type CompanionListResponse struct {
	Companions []CompanionResponse `json:"companions"`
}

// FromDomainProfile конвертирует domain модель в DTO
func FromDomainProfile(p *domain.CompanionProfile) *CompanionResponse {
	if p == nil {
		return nil
	}
	return &CompanionResponse{
		ID:              p.AccountID,
		DisplayName:     p.DisplayName,
		City:            p.City,
		Bio:             p.Bio,
		ServicesOffered: p.ServicesOffered.Strings(),
		Languages:       nonNil(p.Languages),
		HourlyRate:      p.HourlyRate,
		PhotoURIs:       nonNil(p.PhotoURIs),
	}
}

// FromDomainProfileList конвертирует список domain моделей в DTO
func FromDomainProfileList(list []*domain.CompanionProfile) *CompanionListResponse {
	resp := &CompanionListResponse{Companions: make([]CompanionResponse, 0, len(list))}
	for _, p := range list {
		resp.Companions = append(resp.Companions, *FromDomainProfile(p))
	}
	return resp
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
