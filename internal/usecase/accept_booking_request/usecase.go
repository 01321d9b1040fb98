package accept_booking_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/companion-booking/internal/domain"
	requestRepo "github.com/m04kA/companion-booking/internal/infra/storage/bookingrequest"
	"github.com/m04kA/companion-booking/internal/usecase/create_booking"
	"github.com/m04kA/companion-booking/pkg/txmanager"
)

// SourceRequest метка метрики для бронирования из принятого запроса
const SourceRequest = "request"

// UseCase use case для принятия запроса на бронирование компаньоном
type UseCase struct {
	requestRepo  BookingRequestRepository
	creator      BookingCreator
	access       AccessResolver
	dispatcher   EventDispatcher
	metrics      MetricsRecorder
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo BookingRequestRepository,
	creator BookingCreator,
	access AccessResolver,
	dispatcher EventDispatcher,
	metrics MetricsRecorder,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:  requestRepo,
		creator:      creator,
		access:       access,
		dispatcher:   dispatcher,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &create_booking.RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переводит запрос в accepted и создает бронирование в одной транзакции.
// Любая ошибка создания откатывает и смену статуса запроса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AcceptBookingRequest: request id=%d, companion=%d", req.RequestID, req.CompanionID)

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: invalid startTime: %v", domain.ErrInvalidRange, err)
		}
	}

	if _, err := uc.access.RequireRole(ctx, req.CompanionID, domain.RoleCompanion); err != nil {
		uc.logger.Warn("AcceptBookingRequest: companion=%d: %v", req.CompanionID, err)
		return nil, err
	}

	var (
		request  *domain.BookingRequest
		booking  *domain.Booking
		creating bool
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		// 1. Блокируем строку запроса
		request, err = uc.requestRepo.GetByIDForUpdate(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: failed to get booking request: %w", ErrInternal, err)
		}
		if request.CompanionID != req.CompanionID {
			return ErrRequestNotFound
		}

		// 2. pending -> accepted
		if err := request.Accept(uc.timeProvider.Now()); err != nil {
			return err
		}

		start, end, err := request.Interval(req.StartTime)
		if err != nil {
			return err
		}

		// 3. Тот же алгоритм, что и при прямом бронировании
		creating = true
		service := string(request.ServiceType)
		booking, err = uc.creator.Book(txCtx, &create_booking.Request{
			ClientID:         request.ClientID,
			CompanionID:      request.CompanionID,
			Date:             request.RequestedDate,
			StartTime:        start,
			EndTime:          end,
			ServiceType:      &service,
			MeetingLocation:  request.MeetingLocation,
			SpecialRequests:  request.SpecialRequests,
			ExtraAmount:      request.Extra(),
			BookingRequestID: &request.ID,
		})
		if err != nil {
			// Состояние аккаунта клиента компаньону не раскрываем
			if errors.Is(err, domain.ErrNotVerified) {
				uc.logger.Warn("AcceptBookingRequest: request id=%d: client=%d: %v", request.ID, request.ClientID, err)
				return domain.ErrRequestNotBookable
			}
			return err
		}

		// 4. Связываем запрос с бронированием
		request.BookingID = &booking.ID
		if err := uc.requestRepo.UpdateResponse(txCtx, request); err != nil {
			return fmt.Errorf("%w: failed to update booking request: %w", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			err = fmt.Errorf("%w: concurrent booking for the same interval", domain.ErrDoubleBooked)
		}
		if errors.Is(err, ErrInternal) || errors.Is(err, create_booking.ErrInternal) {
			uc.logger.Error("AcceptBookingRequest: request id=%d: %v", req.RequestID, err)
		} else {
			uc.logger.Warn("AcceptBookingRequest: request id=%d rolled back: %v", req.RequestID, err)
		}
		if creating {
			uc.metrics.BookingRejected(create_booking.RejectionReason(err))
		}
		return nil, err
	}

	now := uc.timeProvider.Now()
	uc.metrics.BookingCreated(SourceRequest)
	uc.dispatcher.Dispatch(ctx,
		domain.NewBookingCreatedEvent(booking, now),
		domain.NewBookingRequestClosedEvent(request, now),
	)

	uc.logger.Info("AcceptBookingRequest: request id=%d accepted, booking id=%d", req.RequestID, booking.ID)

	return &Response{
		RequestID:     request.ID,
		RequestStatus: string(request.Status),
		Booking:       create_booking.NewResponse(booking),
	}, nil
}
