package models

import (
	"fmt"
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/pkg/types"
)

// SlotRequest данные слота для создания и полной замены
type SlotRequest struct {
	DayOfWeek   string   `json:"dayOfWeek" validate:"required"`
	StartTime   string   `json:"startTime" validate:"required"` // "09:00"
	EndTime     string   `json:"endTime" validate:"required"`   // "17:00"
	IsAvailable *bool    `json:"isAvailable,omitempty"`
	Services    []string `json:"services" validate:"required,min=1"`
}

// SlotInput разобранный SlotRequest
type SlotInput struct {
	Day         domain.DayOfWeek
	Start       types.TimeString
	End         types.TimeString
	IsAvailable bool
	Services    domain.ServiceTags
}

// Parse проверяет день и интервал. Доступность по умолчанию true
func (r *SlotRequest) Parse() (*SlotInput, error) {
	day, err := domain.ParseDayOfWeek(r.DayOfWeek)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", domain.ErrInvalidRange, err)
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", domain.ErrInvalidRange, err)
	}
	if err := domain.ValidateRange(start, end); err != nil {
		return nil, err
	}

	services := domain.NewServiceTags(r.Services)
	if len(services) == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", domain.ErrInvalidService)
	}

	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}

	return &SlotInput{
		Day:         day,
		Start:       start,
		End:         end,
		IsAvailable: available,
		Services:    services,
	}, nil
}

// SlotResponse слот доступности
type SlotResponse struct {
	ID          int64     `json:"id"`
	CompanionID int64     `json:"companionId"`
	DayOfWeek   string    `json:"dayOfWeek"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	IsAvailable bool      `json:"isAvailable"`
	Services    []string  `json:"services"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SlotListResponse недельная сетка компаньона
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.AvailabilitySlot) *SlotResponse {
	if s == nil {
		return nil
	}
	return &SlotResponse{
		ID:          s.ID,
		CompanionID: s.CompanionID,
		DayOfWeek:   string(s.DayOfWeek),
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		IsAvailable: s.IsAvailable,
		Services:    s.Services.Strings(),
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.AvailabilitySlot) *SlotListResponse {
	resp := &SlotListResponse{Slots: make([]SlotResponse, 0, len(slots))}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, *FromDomainSlot(s))
	}
	return resp
}
