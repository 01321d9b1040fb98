package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/companion-booking/internal/domain"
)

// UseCase use case для получения доступных слотов компаньона на дату
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	access       AccessResolver
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	access AccessResolver,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		access:       access,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: client=%d, companion=%d, date=%s",
		req.ClientID, req.CompanionID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Просмотр доступен только верифицированному клиенту
	if _, err := uc.access.RequireVerifiedClient(ctx, req.ClientID); err != nil {
		uc.logger.Warn("GetAvailableSlots: client=%d: %v", req.ClientID, err)
		return nil, err
	}

	// 3. Компаньон одобрен
	if _, err := uc.access.ApprovedCompanion(ctx, req.CompanionID); err != nil {
		if errors.Is(err, domain.ErrCompanionNotApproved) {
			uc.logger.Warn("GetAvailableSlots: companion id=%d not found", req.CompanionID)
			return nil, ErrCompanionNotFound
		}
		return nil, err
	}

	// 4. Валидация даты
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Слоты дня недели
	day := domain.DayOfWeekFromDate(req.Date)
	slots, err := uc.slotRepo.ListByCompanionAndDay(ctx, req.CompanionID, day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	// 6. Неотмененные бронирования на дату
	bookings, err := uc.bookingRepo.GetBlockingByCompanionAndDate(ctx, req.CompanionID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Занятые и свободные интервалы для каждого слота
	result := buildSlots(slots, bookings, req.Date, now)

	uc.logger.Info("GetAvailableSlots: %d slots for companion=%d, date=%s",
		len(result), req.CompanionID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:        req.Date,
		DayOfWeek:   day,
		CompanionID: req.CompanionID,
		Slots:       result,
	}, nil
}
