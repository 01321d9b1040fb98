package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/companion-booking/internal/domain"
	applicationRepo "github.com/m04kA/companion-booking/internal/infra/storage/application"
	verificationRepo "github.com/m04kA/companion-booking/internal/infra/storage/verification"
	"github.com/m04kA/companion-booking/internal/service/verification/models"
)

// MinCompanionAge минимальный возраст компаньона на дату подачи заявки
const MinCompanionAge = 18

// HashFunc необратимо хеширует номер документа
type HashFunc func(value string) (string, error)

// Service проверка клиентов и заявок компаньонов
type Service struct {
	verificationRepo VerificationRepository
	applicationRepo  ApplicationRepository
	accountRepo      AccountRepository
	access           AccessResolver
	catalog          *domain.ServiceCatalog
	hash             HashFunc
	dispatcher       EventDispatcher
	txManager        TransactionManager
	logger           Logger
	now              func() time.Time
}

// NewService создает новый экземпляр сервиса верификации
func NewService(
	verificationRepo VerificationRepository,
	applicationRepo ApplicationRepository,
	accountRepo AccountRepository,
	access AccessResolver,
	catalog *domain.ServiceCatalog,
	hash HashFunc,
	dispatcher EventDispatcher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		verificationRepo: verificationRepo,
		applicationRepo:  applicationRepo,
		accountRepo:      accountRepo,
		access:           access,
		catalog:          catalog,
		hash:             hash,
		dispatcher:       dispatcher,
		txManager:        txManager,
		logger:           logger,
		now:              time.Now,
	}
}

// SubmitClientVerification отправляет (или повторно отправляет после отказа) данные клиента.
// not_submitted/rejected -> pending
func (s *Service) SubmitClientVerification(ctx context.Context, accountID int64, req *models.SubmitVerificationRequest) (*models.VerificationResponse, error) {
	s.logger.Info("SubmitClientVerification: account=%d", accountID)

	if _, err := s.access.RequireRole(ctx, accountID, domain.RoleClient); err != nil {
		return nil, err
	}

	address := req.Address.ToDomain()
	if !address.IsComplete() {
		s.logger.Warn("SubmitClientVerification: incomplete address for account=%d", accountID)
		return nil, domain.ErrIncompleteAddress
	}
	if strings.TrimSpace(req.GovernmentIDType) == "" || strings.TrimSpace(req.GovernmentIDNumber) == "" {
		return nil, fmt.Errorf("%w: government id type and number are required", ErrInvalidInput)
	}

	numberHash, err := s.hash(strings.TrimSpace(req.GovernmentIDNumber))
	if err != nil {
		s.logger.Error("SubmitClientVerification: failed to hash id number for account=%d: %v", accountID, err)
		return nil, fmt.Errorf("%w: SubmitClientVerification - hash id: %v", ErrInternal, err)
	}

	var saved *domain.ClientVerification
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		v, err := s.verificationRepo.GetForUpdate(ctx, accountID)
		if err != nil {
			if !errors.Is(err, verificationRepo.ErrVerificationNotFound) {
				return fmt.Errorf("%w: SubmitClientVerification - get verification: %v", ErrInternal, err)
			}
			v = domain.NewClientVerification(accountID)
		}

		if err := v.Submit(s.now()); err != nil {
			return err
		}
		v.Address = address
		v.GovernmentIDType = strings.TrimSpace(req.GovernmentIDType)
		v.GovernmentIDNumberHash = numberHash
		v.GovernmentIDDocumentURI = strings.TrimSpace(req.GovernmentIDDocumentURI)

		if err := s.verificationRepo.Save(ctx, v); err != nil {
			return fmt.Errorf("%w: SubmitClientVerification - save: %v", ErrInternal, err)
		}
		saved = v
		return nil
	})
	if err != nil {
		s.logFailure("SubmitClientVerification", accountID, err)
		return nil, err
	}

	s.logger.Info("SubmitClientVerification: account=%d is pending review", accountID)
	return models.FromDomainVerification(saved), nil
}

// GetClientVerification возвращает собственный статус верификации
func (s *Service) GetClientVerification(ctx context.Context, accountID int64) (*models.VerificationResponse, error) {
	if _, err := s.access.Account(ctx, accountID); err != nil {
		return nil, err
	}

	v, err := s.verificationRepo.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, verificationRepo.ErrVerificationNotFound) {
			return models.FromDomainVerification(domain.NewClientVerification(accountID)), nil
		}
		s.logger.Error("GetClientVerification: repository error for account=%d: %v", accountID, err)
		return nil, fmt.Errorf("%w: GetClientVerification - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainVerification(v), nil
}

// SubmitApplication подает заявку на роль компаньона. Пока предыдущая заявка
// на рассмотрении, новую подать нельзя; после одобрения тоже
func (s *Service) SubmitApplication(ctx context.Context, accountID int64, req *models.SubmitApplicationRequest) (*models.ApplicationResponse, error) {
	s.logger.Info("SubmitApplication: account=%d, services=%v", accountID, req.ServicesOffered)

	if _, err := s.access.Account(ctx, accountID); err != nil {
		return nil, err
	}

	app, err := s.buildApplication(accountID, req)
	if err != nil {
		s.logger.Warn("SubmitApplication: invalid application from account=%d: %v", accountID, err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		latest, err := s.applicationRepo.GetLatestByAccount(ctx, accountID)
		switch {
		case errors.Is(err, applicationRepo.ErrApplicationNotFound):
		case err != nil:
			return fmt.Errorf("%w: SubmitApplication - get latest: %v", ErrInternal, err)
		case latest.Status == domain.ReviewPending:
			return domain.ErrAlreadyPending
		case latest.Status == domain.ReviewApproved:
			return domain.ErrAlreadyApproved
		}

		if err := app.Submit(s.now()); err != nil {
			return err
		}

		app, err = s.applicationRepo.Create(ctx, app)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyPending) {
				return err
			}
			return fmt.Errorf("%w: SubmitApplication - create: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("SubmitApplication", accountID, err)
		return nil, err
	}

	s.logger.Info("SubmitApplication: application id=%d created for account=%d", app.ID, accountID)
	return models.FromDomainApplication(app), nil
}

func (s *Service) buildApplication(accountID int64, req *models.SubmitApplicationRequest) (*domain.CompanionApplication, error) {
	if strings.TrimSpace(req.LegalName) == "" || strings.TrimSpace(req.Phone) == "" || strings.TrimSpace(req.City) == "" {
		return nil, fmt.Errorf("%w: legal name, phone and city are required", ErrInvalidInput)
	}

	dob, err := time.Parse(domain.DateFormat, req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: dateOfBirth must be YYYY-MM-DD", ErrInvalidInput)
	}
	if dob.AddDate(MinCompanionAge, 0, 0).After(s.now()) {
		return nil, fmt.Errorf("%w: companion must be at least %d years old", ErrInvalidInput, MinCompanionAge)
	}

	if req.HourlyRate <= 0 || req.HourlyRate > domain.MaxHourlyRate {
		return nil, fmt.Errorf("%w: hourly rate must be in (0, %d]", ErrInvalidInput, domain.MaxHourlyRate)
	}

	services := domain.NewServiceTags(req.ServicesOffered)
	if len(services) == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", domain.ErrInvalidService)
	}
	if err := s.catalog.ValidateSubset(services); err != nil {
		return nil, err
	}

	return &domain.CompanionApplication{
		AccountID:       accountID,
		LegalName:       strings.TrimSpace(req.LegalName),
		DateOfBirth:     dob,
		Phone:           strings.TrimSpace(req.Phone),
		City:            strings.TrimSpace(req.City),
		Bio:             strings.TrimSpace(req.Bio),
		DocumentURIs:    req.DocumentURIs,
		PhotoURIs:       req.PhotoURIs,
		ServicesOffered: services,
		Languages:       req.Languages,
		HourlyRate:      req.HourlyRate,
		Review:          domain.Review{Status: domain.ReviewNotSubmitted},
	}, nil
}

// GetApplication возвращает последнюю заявку аккаунта
func (s *Service) GetApplication(ctx context.Context, accountID int64) (*models.ApplicationResponse, error) {
	app, err := s.applicationRepo.GetLatestByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, applicationRepo.ErrApplicationNotFound) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("GetApplication: repository error for account=%d: %v", accountID, err)
		return nil, fmt.Errorf("%w: GetApplication - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainApplication(app), nil
}

// ReviewVerification решение администратора по верификации клиента. pending -> approved|rejected
func (s *Service) ReviewVerification(ctx context.Context, reviewerID, accountID int64, approve bool, reason string) (*models.VerificationResponse, error) {
	s.logger.Info("ReviewVerification: reviewer=%d, account=%d, approve=%t", reviewerID, accountID, approve)

	if _, err := s.access.RequireRole(ctx, reviewerID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateDecision(approve, reason); err != nil {
		return nil, err
	}

	var v *domain.ClientVerification
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		v, err = s.verificationRepo.GetForUpdate(ctx, accountID)
		if err != nil {
			if errors.Is(err, verificationRepo.ErrVerificationNotFound) {
				return ErrVerificationNotFound
			}
			return fmt.Errorf("%w: ReviewVerification - get verification: %v", ErrInternal, err)
		}

		if approve {
			err = v.Approve(reviewerID, s.now())
		} else {
			err = v.Reject(reviewerID, reason, s.now())
		}
		if err != nil {
			return err
		}

		if err := s.verificationRepo.UpdateReview(ctx, v); err != nil {
			return fmt.Errorf("%w: ReviewVerification - update review: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("ReviewVerification", accountID, err)
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, domain.NewVerificationReviewedEvent(v, s.now()))
	s.logger.Info("ReviewVerification: account=%d is %s", accountID, v.Status)
	return models.FromDomainVerification(v), nil
}

// ReviewApplication решение администратора по заявке. При одобрении роль companion
// добавляется аккаунту в той же транзакции
func (s *Service) ReviewApplication(ctx context.Context, reviewerID, applicationID int64, approve bool, reason string) (*models.ApplicationResponse, error) {
	s.logger.Info("ReviewApplication: reviewer=%d, application=%d, approve=%t", reviewerID, applicationID, approve)

	if _, err := s.access.RequireRole(ctx, reviewerID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateDecision(approve, reason); err != nil {
		return nil, err
	}

	var app *domain.CompanionApplication
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		app, err = s.applicationRepo.GetByIDForUpdate(ctx, applicationID)
		if err != nil {
			if errors.Is(err, applicationRepo.ErrApplicationNotFound) {
				return ErrApplicationNotFound
			}
			return fmt.Errorf("%w: ReviewApplication - get application: %v", ErrInternal, err)
		}

		if approve {
			err = app.Approve(reviewerID, s.now())
		} else {
			err = app.Reject(reviewerID, reason, s.now())
		}
		if err != nil {
			return err
		}

		if err := s.applicationRepo.UpdateReview(ctx, app); err != nil {
			return fmt.Errorf("%w: ReviewApplication - update review: %v", ErrInternal, err)
		}

		if approve {
			if err := s.accountRepo.AddRole(ctx, app.AccountID, domain.RoleCompanion); err != nil {
				return fmt.Errorf("%w: ReviewApplication - grant role: %v", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logFailure("ReviewApplication", applicationID, err)
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, domain.NewApplicationReviewedEvent(app, s.now()))
	s.logger.Info("ReviewApplication: application=%d is %s", applicationID, app.Status)
	return models.FromDomainApplication(app), nil
}

// ListVerifications очередь проверки для администратора
func (s *Service) ListVerifications(ctx context.Context, reviewerID int64, status domain.ReviewStatus) (*models.VerificationListResponse, error) {
	if _, err := s.access.RequireRole(ctx, reviewerID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	list, err := s.verificationRepo.ListByStatus(ctx, status)
	if err != nil {
		s.logger.Error("ListVerifications: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListVerifications - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainVerificationList(list), nil
}

// ListApplications очередь заявок для администратора
func (s *Service) ListApplications(ctx context.Context, reviewerID int64, status domain.ReviewStatus) (*models.ApplicationListResponse, error) {
	if _, err := s.access.RequireRole(ctx, reviewerID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	list, err := s.applicationRepo.ListByStatus(ctx, status)
	if err != nil {
		s.logger.Error("ListApplications: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListApplications - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainApplicationList(list), nil
}

func (s *Service) logFailure(op string, id int64, err error) {
	if errors.Is(err, ErrInternal) {
		s.logger.Error("%s: id=%d: %v", op, id, err)
		return
	}
	s.logger.Warn("%s: id=%d: %v", op, id, err)
}

func validateDecision(approve bool, reason string) error {
	if approve {
		return nil
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%w: rejection reason is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxRejectionReasonLength {
		return fmt.Errorf("%w: reason is longer than %d", ErrInvalidInput, domain.MaxRejectionReasonLength)
	}
	return nil
}
