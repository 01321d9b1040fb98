package accept_booking_request

import (
	"github.com/m04kA/companion-booking/internal/usecase/create_booking"
	"github.com/m04kA/companion-booking/pkg/types"
)

// Request модель запроса на принятие
type Request struct {
	RequestID   int64             // ID запроса на бронирование
	CompanionID int64             // ID компаньона (аккаунт из токена)
	StartTime   *types.TimeString // Переопределяет предложенное клиентом время начала (опционально)
}

// Response принятый запрос и созданное по нему бронирование
type Response struct {
	RequestID     int64
	RequestStatus string
	Booking       *create_booking.Response
}
