package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/pkg/txmanager"
)

// SourceDirect метка метрики для бронирования напрямую по слоту
const SourceDirect = "direct"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo        BookingRepository
	slotRepo           SlotRepository
	access             AccessResolver
	dispatcher         EventDispatcher
	metrics            MetricsRecorder
	txManager          TransactionManager
	platformFeePercent float64
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
// platformFeePercent приходит из конфигурации, а не из глобальной константы
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	access AccessResolver,
	dispatcher EventDispatcher,
	metrics MetricsRecorder,
	txManager TransactionManager,
	platformFeePercent float64,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:        bookingRepo,
		slotRepo:           slotRepo,
		access:             access,
		dispatcher:         dispatcher,
		metrics:            metrics,
		txManager:          txManager,
		platformFeePercent: platformFeePercent,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// SetTimeProvider подменяет источник текущего времени
func (uc *UseCase) SetTimeProvider(p TimeProvider) {
	uc.timeProvider = p
}

// Execute выполняет use case создания бронирования клиентом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, companion=%d, date=%s, time=%s-%s",
		req.ClientID, req.CompanionID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// Самобронирование отклоняется раньше любых проверок состояния
	if req.ClientID == req.CompanionID {
		uc.metrics.BookingRejected(RejectionReason(domain.ErrSelfBooking))
		return nil, domain.ErrSelfBooking
	}

	if _, err := uc.access.RequireRole(ctx, req.ClientID, domain.RoleClient); err != nil {
		uc.logger.Warn("CreateBooking: client=%d: %v", req.ClientID, err)
		return nil, err
	}

	booking, err := uc.Book(ctx, req)
	if err != nil {
		uc.metrics.BookingRejected(RejectionReason(err))
		return nil, err
	}

	uc.metrics.BookingCreated(SourceDirect)
	uc.dispatcher.Dispatch(ctx, domain.NewBookingCreatedEvent(booking, uc.timeProvider.Now()))

	return NewResponse(booking), nil
}

// Book проверяет и сохраняет бронирование в сериализуемой транзакции.
// Если ctx уже несет транзакцию, Book выполняется в ней (принятие запроса на бронирование).
// Активная роль клиента здесь не проверяется: вызывающий отвечает за проверку роли инициатора
func (uc *UseCase) Book(ctx context.Context, req *Request) (*domain.Booking, error) {
	// 1. Клиент и компаньон - разные аккаунты
	if req.ClientID == req.CompanionID {
		return nil, domain.ErrSelfBooking
	}

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 3. Все проверки и запись в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Верификация клиента проверяется на каждом входе
		verified, err := uc.access.ClientVerified(txCtx, req.ClientID)
		if err != nil {
			return err
		}
		if !verified {
			uc.logger.Warn("CreateBooking: client=%d is not verified", req.ClientID)
			return domain.ErrNotVerified
		}

		// 3.2. Компаньон одобрен: ставка и услуги берутся из заявки
		app, err := uc.access.ApprovedCompanion(txCtx, req.CompanionID)
		if err != nil {
			uc.logger.Warn("CreateBooking: companion=%d: %v", req.CompanionID, err)
			return err
		}

		// 3.3. Взаимное исключение по (компаньон, дата)
		if err := uc.txManager.AdvisoryLock(txCtx, domain.BookingLockKey(req.CompanionID, req.Date)); err != nil {
			uc.logger.Error("CreateBooking: failed to acquire lock: %v", err)
			return fmt.Errorf("%w: failed to acquire lock: %w", ErrInternal, err)
		}

		// 3.4. Интервал полностью внутри доступного слота
		day := domain.DayOfWeekFromDate(req.Date)
		slots, err := uc.slotRepo.ListByCompanionAndDay(txCtx, req.CompanionID, day)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get slots: %v", err)
			return fmt.Errorf("%w: failed to get slots: %w", ErrInternal, err)
		}

		slot := domain.FindCoveringSlot(slots, day, req.StartTime, req.EndTime)
		if slot == nil {
			uc.logger.Warn("CreateBooking: %s %s-%s is outside availability of companion=%d",
				day, req.StartTime, req.EndTime, req.CompanionID)
			return fmt.Errorf("%w: no available slot on %s covers %s-%s",
				domain.ErrOutsideAvailability, day, req.StartTime, req.EndTime)
		}

		service, err := validateService(req.ServiceType, app.ServicesOffered, slot)
		if err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return err
		}

		// 3.5. Пересечение с неотмененными бронированиями на дату
		existing, err := uc.bookingRepo.GetBlockingByCompanionAndDate(txCtx, req.CompanionID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		if conflict := domain.FindOverlappingBooking(existing, req.StartTime, req.EndTime); conflict != nil {
			uc.logger.Warn("CreateBooking: %s-%s overlaps booking id=%d", req.StartTime, req.EndTime, conflict.ID)
			return fmt.Errorf("%w: %s-%s is already booked", domain.ErrDoubleBooked, conflict.StartTime, conflict.EndTime)
		}

		// 3.6. Суммы фиксируются на момент создания
		duration := req.StartTime.MinutesUntil(req.EndTime)
		amounts := domain.ComputeAmounts(duration, app.HourlyRate, req.ExtraAmount, uc.platformFeePercent)
		meetingType, _ := domain.ParseMeetingType(req.MeetingType)

		booking := &domain.Booking{
			ClientID:          req.ClientID,
			CompanionID:       req.CompanionID,
			BookingRequestID:  req.BookingRequestID,
			BookingDate:       req.Date,
			StartTime:         req.StartTime,
			EndTime:           req.EndTime,
			ServiceType:       service,
			MeetingLocation:   req.MeetingLocation,
			MeetingType:       meetingType,
			SpecialRequests:   req.SpecialRequests,
			Status:            domain.StatusPending,
			PaymentStatus:     domain.PaymentUnpaid,
			HourlyRate:        app.HourlyRate,
			ExtraAmount:       req.ExtraAmount,
			TotalAmount:       amounts.Total,
			PlatformFee:       amounts.PlatformFee,
			CompanionEarnings: amounts.CompanionEarnings,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// bookings_no_overlap: последний рубеж, если блокировка не сработала
			if errors.Is(err, domain.ErrDoubleBooked) {
				uc.logger.Warn("CreateBooking: %v", err)
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигравший конкурентную запись видит DoubleBooked, а не внутреннюю ошибку
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization conflict for companion=%d on %s",
				req.CompanionID, req.Date.Format(domain.DateFormat))
			return nil, fmt.Errorf("%w: concurrent booking for the same interval", domain.ErrDoubleBooked)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)
	return result, nil
}
