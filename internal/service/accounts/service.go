package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/companion-booking/internal/domain"
	accountRepo "github.com/m04kA/companion-booking/internal/infra/storage/account"
	"github.com/m04kA/companion-booking/internal/service/accounts/models"
)

// Service сервис аккаунтов и активной роли
type Service struct {
	accountRepo AccountRepository
	tokens      TokenIssuer
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса аккаунтов
func NewService(
	accountRepo AccountRepository,
	tokens TokenIssuer,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		accountRepo: accountRepo,
		tokens:      tokens,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetMe возвращает сохраненное состояние аккаунта
func (s *Service) GetMe(ctx context.Context, accountID int64) (*models.AccountResponse, error) {
	acc, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, accountRepo.ErrAccountNotFound) {
			s.logger.Warn("GetMe: account=%d not found", accountID)
			return nil, ErrAccountNotFound
		}
		s.logger.Error("GetMe: repository error for account=%d: %v", accountID, err)
		return nil, fmt.Errorf("%w: GetMe - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainAccount(acc), nil
}

// SwitchActiveRole сохраняет новую активную роль и выпускает токен, отражающий ее.
// Запрошенная роль должна быть в списке выданных ролей, иначе domain.ErrRoleNotGranted
func (s *Service) SwitchActiveRole(ctx context.Context, accountID int64, role string) (*models.SwitchRoleResponse, error) {
	s.logger.Info("SwitchActiveRole: account=%d, role=%s", accountID, role)

	requested, err := domain.ParseRole(role)
	if err != nil {
		s.logger.Warn("SwitchActiveRole: invalid role=%q for account=%d", role, accountID)
		return nil, err
	}

	var acc *domain.Account
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		acc, err = s.accountRepo.GetByIDForUpdate(ctx, accountID)
		if err != nil {
			if errors.Is(err, accountRepo.ErrAccountNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("%w: SwitchActiveRole - get account: %v", ErrInternal, err)
		}

		if err := acc.SwitchActiveRole(requested); err != nil {
			return err
		}

		if err := s.accountRepo.UpdateActiveRole(ctx, accountID, requested); err != nil {
			return fmt.Errorf("%w: SwitchActiveRole - update role: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("SwitchActiveRole: account=%d: %v", accountID, err)
		} else {
			s.logger.Warn("SwitchActiveRole: account=%d: %v", accountID, err)
		}
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(acc)
	if err != nil {
		s.logger.Error("SwitchActiveRole: failed to issue token for account=%d: %v", accountID, err)
		return nil, fmt.Errorf("%w: SwitchActiveRole - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("SwitchActiveRole: account=%d now acts as %s", accountID, requested)
	return &models.SwitchRoleResponse{
		Account:   *models.FromDomainAccount(acc),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
