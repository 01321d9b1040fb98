package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/companion-booking/internal/domain"
	availabilityModels "github.com/m04kA/companion-booking/internal/service/availability/models"
	"github.com/m04kA/companion-booking/internal/service/catalog/models"
)

// Service каталог услуг и компаньонов. Просмотр доступен только верифицированным клиентам
type Service struct {
	catalog         *domain.ServiceCatalog
	applicationRepo ApplicationRepository
	slotRepo        SlotRepository
	access          AccessResolver
	logger          Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	catalog *domain.ServiceCatalog,
	applicationRepo ApplicationRepository,
	slotRepo SlotRepository,
	access AccessResolver,
	logger Logger,
) *Service {
	return &Service{
		catalog:         catalog,
		applicationRepo: applicationRepo,
		slotRepo:        slotRepo,
		access:          access,
		logger:          logger,
	}
}

// ListServices возвращает каталог услуг в порядке конфигурации
func (s *Service) ListServices() *models.ServicesResponse {
	tags := s.catalog.Tags()
	resp := &models.ServicesResponse{Services: make([]string, len(tags))}
	for i, tag := range tags {
		resp.Services[i] = string(tag)
	}
	return resp
}

// ListCompanions одобренные компаньоны, опционально только предлагающие услугу
func (s *Service) ListCompanions(ctx context.Context, clientID int64, service string) (*models.CompanionListResponse, error) {
	s.logger.Info("ListCompanions: client=%d, service=%q", clientID, service)

	if _, err := s.access.RequireVerifiedClient(ctx, clientID); err != nil {
		return nil, err
	}

	var filter *domain.ServiceTag
	if service = strings.TrimSpace(service); service != "" {
		tag := domain.ServiceTag(service)
		if !s.catalog.Contains(tag) {
			return nil, fmt.Errorf("%w: %q is not in the service catalog", domain.ErrInvalidService, service)
		}
		filter = &tag
	}

	profiles, err := s.applicationRepo.ListApprovedCompanions(ctx, filter)
	if err != nil {
		s.logger.Error("ListCompanions: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCompanions - repository error: %v", ErrInternal, err)
	}

	// клиент не видит себя в каталоге
	visible := profiles[:0]
	for _, p := range profiles {
		if p.AccountID != clientID {
			visible = append(visible, p)
		}
	}

	return models.FromDomainProfileList(visible), nil
}

// GetCompanionSlots недельная сетка одобренного компаньона
func (s *Service) GetCompanionSlots(ctx context.Context, clientID, companionID int64) (*availabilityModels.SlotListResponse, error) {
	if _, err := s.access.RequireVerifiedClient(ctx, clientID); err != nil {
		return nil, err
	}

	if _, err := s.access.ApprovedCompanion(ctx, companionID); err != nil {
		if errors.Is(err, domain.ErrCompanionNotApproved) {
			return nil, ErrCompanionNotFound
		}
		return nil, err
	}

	slots, err := s.slotRepo.ListByCompanion(ctx, companionID)
	if err != nil {
		s.logger.Error("GetCompanionSlots: repository error for companion=%d: %v", companionID, err)
		return nil, fmt.Errorf("%w: GetCompanionSlots - repository error: %v", ErrInternal, err)
	}
	return availabilityModels.FromDomainSlotList(slots), nil
}
