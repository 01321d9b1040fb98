package create_booking

import (
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID         int64            // ID клиента (аккаунт из токена)
	CompanionID      int64            // ID компаньона
	Date             time.Time        // Дата бронирования (без времени)
	StartTime        types.TimeString // Время начала, например "12:00"
	EndTime          types.TimeString // Время окончания (не включительно)
	ServiceType      *string          // Услуга из каталога (опционально)
	MeetingLocation  string
	MeetingType      string  // in_person | virtual, по умолчанию in_person
	SpecialRequests  *string // Пожелания клиента (опционально)
	ExtraAmount      float64 // Доплата сверх почасовой ставки
	BookingRequestID *int64  // Заполняется при принятии запроса на бронирование
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               int64
	ClientID         int64
	CompanionID      int64
	BookingRequestID *int64
	BookingDate      time.Time
	StartTime        types.TimeString
	EndTime          types.TimeString
	ServiceType      *string
	MeetingLocation  string
	MeetingType      string
	SpecialRequests  *string
	Status           string
	PaymentStatus    string

	// Снимок сумм на момент создания
	HourlyRate        float64
	ExtraAmount       float64
	TotalAmount       float64
	PlatformFee       float64
	CompanionEarnings float64

	CreatedAt time.Time
}

// NewResponse конвертирует созданное бронирование в ответ
func NewResponse(b *domain.Booking) *Response {
	var service *string
	if b.ServiceType != nil {
		s := string(*b.ServiceType)
		service = &s
	}
	return &Response{
		ID:                b.ID,
		ClientID:          b.ClientID,
		CompanionID:       b.CompanionID,
		BookingRequestID:  b.BookingRequestID,
		BookingDate:       b.BookingDate,
		StartTime:         b.StartTime,
		EndTime:           b.EndTime,
		ServiceType:       service,
		MeetingLocation:   b.MeetingLocation,
		MeetingType:       string(b.MeetingType),
		SpecialRequests:   b.SpecialRequests,
		Status:            string(b.Status),
		PaymentStatus:     string(b.PaymentStatus),
		HourlyRate:        b.HourlyRate,
		ExtraAmount:       b.ExtraAmount,
		TotalAmount:       b.TotalAmount,
		PlatformFee:       b.PlatformFee,
		CompanionEarnings: b.CompanionEarnings,
		CreatedAt:         b.CreatedAt,
	}
}
