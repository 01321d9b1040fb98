package get_available_slots

import (
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ClientID    int64     // ID клиента (гейт верификации)
	CompanionID int64     // ID компаньона
	Date        time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со слотами на дату
type Response struct {
	Date        time.Time        // Дата, на которую запрашивались слоты
	DayOfWeek   domain.DayOfWeek // День недели даты
	CompanionID int64            // ID компаньона
	Slots       []Slot           // Доступные слоты дня
}

// Slot слот доступности с занятыми и свободными интервалами
type Slot struct {
	SlotID    int64
	StartTime types.TimeString
	EndTime   types.TimeString
	Services  []string
	Booked    []Interval // Интервалы неотмененных бронирований внутри слота
	Free      []Interval // Свободные интервалы не короче минимальной длительности бронирования
}

// Interval полуинтервал [StartTime, EndTime)
type Interval struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}
