package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/companion-booking/internal/domain"
	accountRepo "github.com/m04kA/companion-booking/internal/infra/storage/account"
	applicationRepo "github.com/m04kA/companion-booking/internal/infra/storage/application"
	verificationRepo "github.com/m04kA/companion-booking/internal/infra/storage/verification"
)

// Resolver перечитывает сохраненное состояние аккаунта на каждом запросе.
// Роль из токена не используется: действует только active_role из БД
type Resolver struct {
	accounts      AccountRepository
	verifications VerificationRepository
	applications  ApplicationRepository
	logger        Logger
}

func NewResolver(
	accounts AccountRepository,
	verifications VerificationRepository,
	applications ApplicationRepository,
	logger Logger,
) *Resolver {
	return &Resolver{
		accounts:      accounts,
		verifications: verifications,
		applications:  applications,
		logger:        logger,
	}
}

// Account возвращает сохраненный аккаунт
func (r *Resolver) Account(ctx context.Context, accountID int64) (*domain.Account, error) {
	acc, err := r.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, accountRepo.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		r.logger.Error("Account: repository error for account=%d: %v", accountID, err)
		return nil, fmt.Errorf("%w: Account - repository error: %v", ErrInternal, err)
	}
	return acc, nil
}

// RequireRole проверяет, что аккаунт сейчас действует в роли role
func (r *Resolver) RequireRole(ctx context.Context, accountID int64, role domain.Role) (*domain.Account, error) {
	acc, err := r.Account(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := acc.RequireActiveRole(role); err != nil {
		r.logger.Warn("RequireRole: account=%d: %v", accountID, err)
		return nil, err
	}
	return acc, nil
}

// ClientVerified вычисляет canBrowseOrBook для клиента (без проверки активной роли)
func (r *Resolver) ClientVerified(ctx context.Context, clientID int64) (bool, error) {
	v, err := r.verifications.Get(ctx, clientID)
	if err != nil {
		if errors.Is(err, verificationRepo.ErrVerificationNotFound) {
			return false, nil
		}
		r.logger.Error("ClientVerified: repository error for account=%d: %v", clientID, err)
		return false, fmt.Errorf("%w: ClientVerified - repository error: %v", ErrInternal, err)
	}
	return domain.CanBrowseOrBook(v), nil
}

// RequireVerifiedClient активная роль client и пройденная верификация
func (r *Resolver) RequireVerifiedClient(ctx context.Context, accountID int64) (*domain.Account, error) {
	acc, err := r.RequireRole(ctx, accountID, domain.RoleClient)
	if err != nil {
		return nil, err
	}
	ok, err := r.ClientVerified(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !ok {
		r.logger.Warn("RequireVerifiedClient: account=%d is not verified", accountID)
		return nil, domain.ErrNotVerified
	}
	return acc, nil
}

// ApprovedCompanion возвращает одобренную заявку компаньона (услуги и ставка)
// Для неодобренного компаньона ErrCompanionNotApproved
func (r *Resolver) ApprovedCompanion(ctx context.Context, companionID int64) (*domain.CompanionApplication, error) {
	acc, err := r.Account(ctx, companionID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, domain.ErrCompanionNotApproved
		}
		return nil, err
	}
	if !acc.HasRole(domain.RoleCompanion) {
		return nil, domain.ErrCompanionNotApproved
	}

	app, err := r.applications.GetApprovedByAccount(ctx, companionID)
	if err != nil {
		if errors.Is(err, applicationRepo.ErrApplicationNotFound) {
			return nil, domain.ErrCompanionNotApproved
		}
		r.logger.Error("ApprovedCompanion: repository error for account=%d: %v", companionID, err)
		return nil, fmt.Errorf("%w: ApprovedCompanion - repository error: %v", ErrInternal, err)
	}
	if !domain.CanPublishAvailabilityOrAppearInCatalog(app) {
		return nil, domain.ErrCompanionNotApproved
	}
	return app, nil
}

// RequireApprovedCompanion активная роль companion и одобренная заявка
func (r *Resolver) RequireApprovedCompanion(ctx context.Context, accountID int64) (*domain.Account, *domain.CompanionApplication, error) {
	acc, err := r.RequireRole(ctx, accountID, domain.RoleCompanion)
	if err != nil {
		return nil, nil, err
	}
	app, err := r.ApprovedCompanion(ctx, accountID)
	if err != nil {
		r.logger.Warn("RequireApprovedCompanion: account=%d: %v", accountID, err)
		return nil, nil, err
	}
	return acc, app, nil
}
