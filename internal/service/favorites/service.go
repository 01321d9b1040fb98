package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/companion-booking/internal/domain"
	favoriteRepo "github.com/m04kA/companion-booking/internal/infra/storage/favorite"
	"github.com/m04kA/companion-booking/internal/service/favorites/models"
)

// Service избранные компаньоны клиента
type Service struct {
	favoriteRepo FavoriteRepository
	accountRepo  AccountRepository
	access       AccessResolver
	logger       Logger
}

func NewService(favoriteRepo FavoriteRepository, accountRepo AccountRepository, access AccessResolver, logger Logger) *Service {
	return &Service{
		favoriteRepo: favoriteRepo,
		accountRepo:  accountRepo,
		access:       access,
		logger:       logger,
	}
}

// Add повторное добавление не ошибка
func (s *Service) Add(ctx context.Context, clientID, companionID int64) error {
	if _, err := s.access.RequireVerifiedClient(ctx, clientID); err != nil {
		return err
	}
	if clientID == companionID {
		return domain.ErrSelfBooking
	}
	if _, err := s.access.ApprovedCompanion(ctx, companionID); err != nil {
		return err
	}

	if err := s.favoriteRepo.Add(ctx, clientID, companionID); err != nil {
		s.logger.Error("AddFavorite: repository error for client=%d: %v", clientID, err)
		return fmt.Errorf("%w: AddFavorite - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("AddFavorite: client=%d added companion=%d", clientID, companionID)
	return nil
}

func (s *Service) Remove(ctx context.Context, clientID, companionID int64) error {
	if _, err := s.access.RequireRole(ctx, clientID, domain.RoleClient); err != nil {
		return err
	}

	if err := s.favoriteRepo.Remove(ctx, clientID, companionID); err != nil {
		if errors.Is(err, favoriteRepo.ErrFavoriteNotFound) {
			return ErrFavoriteNotFound
		}
		s.logger.Error("RemoveFavorite: repository error for client=%d: %v", clientID, err)
		return fmt.Errorf("%w: RemoveFavorite - repository error: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, clientID int64) (*models.FavoriteListResponse, error) {
	if _, err := s.access.RequireRole(ctx, clientID, domain.RoleClient); err != nil {
		return nil, err
	}

	list, err := s.favoriteRepo.ListByClient(ctx, clientID)
	if err != nil {
		s.logger.Error("ListFavorites: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: ListFavorites - repository error: %v", ErrInternal, err)
	}

	ids := make([]int64, len(list))
	for i, f := range list {
		ids[i] = f.CompanionID
	}
	accounts, err := s.accountRepo.ListByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("ListFavorites: accounts repository error: %v", err)
		return nil, fmt.Errorf("%w: ListFavorites - accounts: %v", ErrInternal, err)
	}

	return models.FromDomainFavorites(list, accounts), nil
}
