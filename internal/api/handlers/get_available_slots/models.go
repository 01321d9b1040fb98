package get_available_slots

import (
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
	getAvailableSlots "github.com/m04kA/companion-booking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date        string          `json:"date"`
	DayOfWeek   string          `json:"dayOfWeek"`
	CompanionID int64           `json:"companionId"`
	Slots       []AvailableSlot `json:"slots"`
}

// AvailableSlot слот доступности с занятыми и свободными интервалами
type AvailableSlot struct {
	SlotID    int64      `json:"slotId"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Services  []string   `json:"services"`
	Booked    []Interval `json:"booked"`
	Free      []Interval `json:"free"`
}

// Interval полуинтервал [startTime, endTime)
type Interval struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			SlotID:    slot.SlotID,
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Services:  slot.Services,
			Booked:    toIntervals(slot.Booked),
			Free:      toIntervals(slot.Free),
		}
	}

	return &AvailableSlotsResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		DayOfWeek:   string(resp.DayOfWeek),
		CompanionID: resp.CompanionID,
		Slots:       slots,
	}
}

func toIntervals(in []getAvailableSlots.Interval) []Interval {
	out := make([]Interval, len(in))
	for i, iv := range in {
		out[i] = Interval{StartTime: iv.StartTime.String(), EndTime: iv.EndTime.String()}
	}
	return out
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(clientID, companionID int64, dateStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ClientID:    clientID,
		CompanionID: companionID,
		Date:        date,
	}, nil
}
