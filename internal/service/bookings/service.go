package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
	bookingRepo "github.com/m04kA/companion-booking/internal/infra/storage/booking"
	"github.com/m04kA/companion-booking/internal/service/bookings/models"
	requestModels "github.com/m04kA/companion-booking/internal/service/bookingrequests/models"
	"github.com/m04kA/companion-booking/pkg/ptr"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	requestRepo BookingRequestRepository
	access      AccessResolver
	dispatcher  EventDispatcher
	metrics     MetricsRecorder
	txManager   TransactionManager
	logger      Logger
	now         func() time.Time
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	requestRepo BookingRequestRepository,
	access AccessResolver,
	dispatcher EventDispatcher,
	metrics MetricsRecorder,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		requestRepo: requestRepo,
		access:      access,
		dispatcher:  dispatcher,
		metrics:     metrics,
		txManager:   txManager,
		logger:      logger,
		now:         time.Now,
	}
}

// GetByID получает бронирование по ID
// Видно только участникам: для остальных бронирование не существует
func (s *Service) GetByID(ctx context.Context, id int64, accountID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for account=%d", id, accountID)

	if _, err := s.access.Account(ctx, accountID); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if _, err := booking.ParticipantRole(accountID); err != nil {
		s.logger.Warn("GetByID: account=%d is not a participant of booking id=%d", accountID, id)
		return nil, ErrBookingNotFound
	}

	return models.FromDomainBooking(booking), nil
}

// List бронирования той стороны, в роли которой аккаунт сейчас действует
func (s *Service) List(ctx context.Context, accountID int64, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for account=%d, status=%v", accountID, req.Status)

	acc, err := s.access.Account(ctx, accountID)
	if err != nil {
		return nil, err
	}
	role, err := acc.CurrentRole()
	if err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for account=%d: %v", accountID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	switch role {
	case domain.RoleClient:
		filter.ClientID = &accountID
	case domain.RoleCompanion:
		filter.CompanionID = &accountID
	default:
		return nil, fmt.Errorf("%w: bookings are listed as client or companion", domain.ErrRoleNotActive)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for account=%d: %v", accountID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings for account=%d as %s", len(bookings), accountID, role)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит бронирование по машине состояний.
// Актор это сторона бронирования, и она должна совпадать с активной ролью аккаунта
func (s *Service) UpdateStatus(ctx context.Context, bookingID, accountID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d, account=%d, status=%s", bookingID, accountID, req.Status)

	to, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(req.Reason)
	if len(reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason is longer than %d", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	acc, err := s.access.Account(ctx, accountID)
	if err != nil {
		return nil, err
	}
	activeRole, err := acc.CurrentRole()
	if err != nil {
		return nil, err
	}

	var (
		booking *domain.Booking
		from    domain.BookingStatus
	)
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		booking, err = s.bookingRepo.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get booking: %v", ErrInternal, err)
		}

		side, err := booking.ParticipantRole(accountID)
		if err != nil {
			return ErrBookingNotFound
		}
		if side != activeRole {
			return fmt.Errorf("%w: booking side is %s, active role is %s", domain.ErrRoleNotActive, side, activeRole)
		}

		from = booking.Status
		if err := domain.ValidateTransition(from, to, side); err != nil {
			return err
		}

		applyTransition(booking, to, side, reason, s.now())

		if err := s.bookingRepo.UpdateStatus(ctx, booking, from); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusChanged) {
				return &domain.InvalidTransitionError{From: string(from), To: string(to)}
			}
			return fmt.Errorf("%w: UpdateStatus - update: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("UpdateStatus: booking id=%d: %v", bookingID, err)
		} else {
			s.logger.Warn("UpdateStatus: booking id=%d: %v", bookingID, err)
		}
		return nil, err
	}

	s.metrics.Transition(string(from), string(to))
	s.dispatcher.Dispatch(ctx, domain.NewBookingStatusChangedEvent(booking, from, activeRole, s.now()))

	s.logger.Info("UpdateStatus: booking id=%d moved %s -> %s by %s", bookingID, from, to, activeRole)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование от имени стороны, в роли которой аккаунт действует
func (s *Service) Cancel(ctx context.Context, bookingID, accountID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	return s.UpdateStatus(ctx, bookingID, accountID, &models.UpdateStatusRequest{
		Status: string(domain.StatusCancelled),
		Reason: req.CancellationReason,
	})
}

// ListPendingApprovals ожидающие подтверждения бронирования и открытые запросы компаньона
func (s *Service) ListPendingApprovals(ctx context.Context, companionID int64) (*models.PendingApprovalsResponse, error) {
	if _, err := s.access.RequireRole(ctx, companionID, domain.RoleCompanion); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingFilter{
		CompanionID: &companionID,
		Status:      ptr.Ptr(domain.StatusPending),
	})
	if err != nil {
		s.logger.Error("ListPendingApprovals: bookings repository error for companion=%d: %v", companionID, err)
		return nil, fmt.Errorf("%w: ListPendingApprovals - bookings: %v", ErrInternal, err)
	}

	requests, err := s.requestRepo.List(ctx, domain.BookingRequestFilter{
		CompanionID: &companionID,
		Status:      ptr.Ptr(domain.RequestPending),
	})
	if err != nil {
		s.logger.Error("ListPendingApprovals: requests repository error for companion=%d: %v", companionID, err)
		return nil, fmt.Errorf("%w: ListPendingApprovals - requests: %v", ErrInternal, err)
	}

	return &models.PendingApprovalsResponse{
		Bookings: models.FromDomainBookingList(bookings).Bookings,
		Requests: requestModels.FromDomainRequestList(requests).Requests,
	}, nil
}

func applyTransition(b *domain.Booking, to domain.BookingStatus, actor domain.Role, reason string, now time.Time) {
	b.Status = to
	switch to {
	case domain.StatusConfirmed:
		b.ConfirmedAt = &now
	case domain.StatusCompleted:
		b.CompletedAt = &now
	case domain.StatusCancelled:
		b.CancelledBy = &actor
		b.CancelledAt = &now
		if reason != "" {
			b.CancellationReason = &reason
		}
	}
}
