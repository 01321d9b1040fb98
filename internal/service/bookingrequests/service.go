package bookingrequests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
	requestRepo "github.com/m04kA/companion-booking/internal/infra/storage/bookingrequest"
	"github.com/m04kA/companion-booking/internal/service/bookingrequests/models"
	"github.com/m04kA/companion-booking/pkg/types"
)

// Service запросы клиентов на время вне опубликованных слотов.
// Принятие запроса выполняет usecase accept_booking_request
type Service struct {
	requestRepo BookingRequestRepository
	access      AccessResolver
	dispatcher  EventDispatcher
	txManager   TransactionManager
	logger      Logger
	now         func() time.Time
}

// NewService создает новый экземпляр сервиса запросов
func NewService(
	requestRepo BookingRequestRepository,
	access AccessResolver,
	dispatcher EventDispatcher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		requestRepo: requestRepo,
		access:      access,
		dispatcher:  dispatcher,
		txManager:   txManager,
		logger:      logger,
		now:         time.Now,
	}
}

// Create сохраняет предложение клиента в статусе pending
func (s *Service) Create(ctx context.Context, clientID int64, req *models.CreateBookingRequestRequest) (*models.BookingRequestResponse, error) {
	s.logger.Info("CreateBookingRequest: client=%d, companion=%d, date=%s", clientID, req.CompanionID, req.RequestedDate)

	if clientID == req.CompanionID {
		s.logger.Warn("CreateBookingRequest: client=%d attempted to request itself", clientID)
		return nil, domain.ErrSelfBooking
	}

	if _, err := s.access.RequireVerifiedClient(ctx, clientID); err != nil {
		return nil, err
	}

	app, err := s.access.ApprovedCompanion(ctx, req.CompanionID)
	if err != nil {
		s.logger.Warn("CreateBookingRequest: companion=%d: %v", req.CompanionID, err)
		return nil, err
	}

	request, err := s.buildRequest(clientID, req)
	if err != nil {
		s.logger.Warn("CreateBookingRequest: invalid request from client=%d: %v", clientID, err)
		return nil, err
	}
	if !app.ServicesOffered.Contains(request.ServiceType) {
		return nil, fmt.Errorf("%w: %q is not offered by this companion", domain.ErrInvalidService, request.ServiceType)
	}

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		s.logger.Error("CreateBookingRequest: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: CreateBookingRequest - repository error: %v", ErrInternal, err)
	}

	s.dispatcher.Dispatch(ctx, domain.NewBookingRequestCreatedEvent(created, s.now()))
	s.logger.Info("CreateBookingRequest: request id=%d created", created.ID)
	return models.FromDomainRequest(created), nil
}

func (s *Service) buildRequest(clientID int64, req *models.CreateBookingRequestRequest) (*domain.BookingRequest, error) {
	date, err := time.Parse(domain.DateFormat, req.RequestedDate)
	if err != nil {
		return nil, fmt.Errorf("%w: requestedDate must be YYYY-MM-DD", ErrInvalidDate)
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return nil, fmt.Errorf("%w: %s is in the past", ErrInvalidDate, req.RequestedDate)
	}

	if req.DurationHours <= 0 || req.DurationHours > domain.MaxBookingRequestHours {
		return nil, fmt.Errorf("%w: duration must be in (0, %d] hours", ErrInvalidInput, domain.MaxBookingRequestHours)
	}
	if req.ExtraAmount != nil && *req.ExtraAmount < 0 {
		return nil, fmt.Errorf("%w: extra amount must not be negative", ErrInvalidInput)
	}
	if len(req.MeetingLocation) > domain.MaxMeetingLocationLength {
		return nil, fmt.Errorf("%w: meeting location is too long", ErrInvalidInput)
	}
	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return nil, fmt.Errorf("%w: special requests are too long", ErrInvalidInput)
	}

	request := &domain.BookingRequest{
		ClientID:        clientID,
		CompanionID:     req.CompanionID,
		RequestedDate:   date,
		DurationHours:   req.DurationHours,
		ServiceType:     domain.ServiceTag(strings.TrimSpace(req.ServiceType)),
		ExtraAmount:     req.ExtraAmount,
		MeetingLocation: strings.TrimSpace(req.MeetingLocation),
		SpecialRequests: req.SpecialRequests,
		Status:          domain.RequestPending,
	}

	if request.StartTime, err = parseOptionalTime(req.StartTime); err != nil {
		return nil, err
	}
	if request.EndTime, err = parseOptionalTime(req.EndTime); err != nil {
		return nil, err
	}
	// предложенное время, если оно есть, должно давать корректный интервал
	if request.StartTime != nil {
		if _, _, err := request.Interval(nil); err != nil {
			return nil, err
		}
	}

	return request, nil
}

func parseOptionalTime(value *string) (*types.TimeString, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := types.NewTimeStringFromString(strings.TrimSpace(*value))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRange, err)
	}
	return &t, nil
}

// Get возвращает запрос участнику
func (s *Service) Get(ctx context.Context, requestID, accountID int64) (*models.BookingRequestResponse, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetBookingRequest: repository error for request id=%d: %v", requestID, err)
		return nil, fmt.Errorf("%w: GetBookingRequest - repository error: %v", ErrInternal, err)
	}
	if req.ClientID != accountID && req.CompanionID != accountID {
		return nil, ErrRequestNotFound
	}
	return models.FromDomainRequest(req), nil
}

// List запросы той стороны, в роли которой аккаунт сейчас действует
func (s *Service) List(ctx context.Context, accountID int64, req *models.ListBookingRequestsRequest) (*models.BookingRequestListResponse, error) {
	acc, err := s.access.Account(ctx, accountID)
	if err != nil {
		return nil, err
	}
	role, err := acc.CurrentRole()
	if err != nil {
		return nil, err
	}

	var filter domain.BookingRequestFilter
	switch role {
	case domain.RoleClient:
		filter.ClientID = &accountID
	case domain.RoleCompanion:
		filter.CompanionID = &accountID
	default:
		return nil, fmt.Errorf("%w: requests are listed as client or companion", domain.ErrRoleNotActive)
	}

	if req.Status != nil {
		status, err := domain.ParseRequestStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}

	list, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookingRequests: repository error for account=%d: %v", accountID, err)
		return nil, fmt.Errorf("%w: ListBookingRequests - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainRequestList(list), nil
}

// Reject отклоняет запрос. Повторный отказ всегда возвращает domain.ErrRequestAlreadyRejected
// и не меняет состояние
func (s *Service) Reject(ctx context.Context, requestID, companionID int64) (*models.BookingRequestResponse, error) {
	s.logger.Info("RejectBookingRequest: request id=%d, companion=%d", requestID, companionID)

	if _, err := s.access.RequireRole(ctx, companionID, domain.RoleCompanion); err != nil {
		return nil, err
	}

	var request *domain.BookingRequest
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.requestRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: RejectBookingRequest - get request: %v", ErrInternal, err)
		}
		if request.CompanionID != companionID {
			return ErrRequestNotFound
		}

		if err := request.Reject(s.now()); err != nil {
			return err
		}

		if err := s.requestRepo.UpdateResponse(ctx, request); err != nil {
			return fmt.Errorf("%w: RejectBookingRequest - update: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("RejectBookingRequest: request id=%d: %v", requestID, err)
		} else {
			s.logger.Warn("RejectBookingRequest: request id=%d: %v", requestID, err)
		}
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, domain.NewBookingRequestClosedEvent(request, s.now()))
	s.logger.Info("RejectBookingRequest: request id=%d rejected", requestID)
	return models.FromDomainRequest(request), nil
}
