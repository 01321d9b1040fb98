package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/companion-booking/internal/domain"
	slotRepo "github.com/m04kA/companion-booking/internal/infra/storage/slot"
	"github.com/m04kA/companion-booking/internal/service/availability/models"
)

// Service ведет недельную сетку доступности компаньона.
// Изменения сериализуются по (companion, day_of_week)
type Service struct {
	slotRepo  SlotRepository
	access    AccessResolver
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	slotRepo SlotRepository,
	access AccessResolver,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:  slotRepo,
		access:    access,
		txManager: txManager,
		logger:    logger,
	}
}

// AddSlot публикует новый слот. Пересечение с существующим слотом того же дня
// возвращает *domain.SlotOverlapError с границами конфликтующего слота
func (s *Service) AddSlot(ctx context.Context, companionID int64, req *models.SlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("AddSlot: companion=%d, day=%s, %s-%s", companionID, req.DayOfWeek, req.StartTime, req.EndTime)

	_, app, err := s.access.RequireApprovedCompanion(ctx, companionID)
	if err != nil {
		return nil, err
	}

	in, err := req.Parse()
	if err != nil {
		s.logger.Warn("AddSlot: invalid slot for companion=%d: %v", companionID, err)
		return nil, err
	}
	if err := in.Services.SubsetOf(app.ServicesOffered); err != nil {
		s.logger.Warn("AddSlot: companion=%d: %v", companionID, err)
		return nil, err
	}

	slot := &domain.AvailabilitySlot{
		CompanionID: companionID,
		DayOfWeek:   in.Day,
		StartTime:   in.Start,
		EndTime:     in.End,
		IsAvailable: in.IsAvailable,
		Services:    in.Services,
	}

	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if err := s.txManager.AdvisoryLock(ctx, domain.SlotLockKey(companionID, in.Day)); err != nil {
			return fmt.Errorf("%w: AddSlot - lock: %v", ErrInternal, err)
		}

		if err := s.checkDay(ctx, slot, 0); err != nil {
			return err
		}

		if _, err := s.slotRepo.Create(ctx, slot); err != nil {
			return fmt.Errorf("%w: AddSlot - create: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("AddSlot", companionID, err)
		return nil, err
	}

	s.logger.Info("AddSlot: slot id=%d created for companion=%d", slot.ID, companionID)
	return models.FromDomainSlot(slot), nil
}

// UpdateSlot полностью заменяет слот. Проверка пересечения исключает сам редактируемый слот
func (s *Service) UpdateSlot(ctx context.Context, companionID, slotID int64, req *models.SlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("UpdateSlot: companion=%d, slot=%d, day=%s, %s-%s", companionID, slotID, req.DayOfWeek, req.StartTime, req.EndTime)

	_, app, err := s.access.RequireApprovedCompanion(ctx, companionID)
	if err != nil {
		return nil, err
	}

	in, err := req.Parse()
	if err != nil {
		s.logger.Warn("UpdateSlot: invalid slot for companion=%d: %v", companionID, err)
		return nil, err
	}
	if err := in.Services.SubsetOf(app.ServicesOffered); err != nil {
		s.logger.Warn("UpdateSlot: companion=%d: %v", companionID, err)
		return nil, err
	}

	var slot *domain.AvailabilitySlot
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		var err error
		slot, err = s.getOwned(ctx, companionID, slotID)
		if err != nil {
			return err
		}

		// оба дня блокируются в одном порядке, чтобы два переноса навстречу не взаимоблокировались
		keys := []string{domain.SlotLockKey(companionID, slot.DayOfWeek)}
		if slot.DayOfWeek != in.Day {
			keys = append(keys, domain.SlotLockKey(companionID, in.Day))
			sort.Strings(keys)
		}
		for _, key := range keys {
			if err := s.txManager.AdvisoryLock(ctx, key); err != nil {
				return fmt.Errorf("%w: UpdateSlot - lock: %v", ErrInternal, err)
			}
		}

		slot.DayOfWeek = in.Day
		slot.StartTime = in.Start
		slot.EndTime = in.End
		slot.IsAvailable = in.IsAvailable
		slot.Services = in.Services

		if err := s.checkDay(ctx, slot, slot.ID); err != nil {
			return err
		}

		if err := s.slotRepo.Update(ctx, slot); err != nil {
			return fmt.Errorf("%w: UpdateSlot - update: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("UpdateSlot", companionID, err)
		return nil, err
	}

	s.logger.Info("UpdateSlot: slot id=%d updated", slotID)
	return models.FromDomainSlot(slot), nil
}

// RemoveSlot удаляет слот. Уже созданные бронирования не затрагиваются
func (s *Service) RemoveSlot(ctx context.Context, companionID, slotID int64) error {
	s.logger.Info("RemoveSlot: companion=%d, slot=%d", companionID, slotID)

	if _, err := s.access.RequireRole(ctx, companionID, domain.RoleCompanion); err != nil {
		return err
	}

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		slot, err := s.getOwned(ctx, companionID, slotID)
		if err != nil {
			return err
		}
		if err := s.txManager.AdvisoryLock(ctx, domain.SlotLockKey(companionID, slot.DayOfWeek)); err != nil {
			return fmt.Errorf("%w: RemoveSlot - lock: %v", ErrInternal, err)
		}
		if err := s.slotRepo.Delete(ctx, slotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: RemoveSlot - delete: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("RemoveSlot", companionID, err)
		return err
	}

	s.logger.Info("RemoveSlot: slot id=%d removed", slotID)
	return nil
}

// ListMySlots недельная сетка текущего компаньона
func (s *Service) ListMySlots(ctx context.Context, companionID int64) (*models.SlotListResponse, error) {
	if _, err := s.access.RequireRole(ctx, companionID, domain.RoleCompanion); err != nil {
		return nil, err
	}

	slots, err := s.slotRepo.ListByCompanion(ctx, companionID)
	if err != nil {
		s.logger.Error("ListMySlots: repository error for companion=%d: %v", companionID, err)
		return nil, fmt.Errorf("%w: ListMySlots - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSlotList(slots), nil
}

// checkDay проверяет пересечение и лимит слотов в дне slot.DayOfWeek
func (s *Service) checkDay(ctx context.Context, slot *domain.AvailabilitySlot, excludeID int64) error {
	existing, err := s.slotRepo.ListByCompanionAndDay(ctx, slot.CompanionID, slot.DayOfWeek)
	if err != nil {
		return fmt.Errorf("%w: list day slots: %v", ErrInternal, err)
	}

	if conflict := domain.FindOverlappingSlot(existing, slot.DayOfWeek, slot.StartTime, slot.EndTime, excludeID); conflict != nil {
		return &domain.SlotOverlapError{Conflicting: *conflict}
	}

	others := 0
	for _, e := range existing {
		if e.ID != excludeID {
			others++
		}
	}
	if others >= domain.MaxSlotsPerDay {
		return fmt.Errorf("%w: limit is %d", ErrTooManySlots, domain.MaxSlotsPerDay)
	}
	return nil
}

func (s *Service) getOwned(ctx context.Context, companionID, slotID int64) (*domain.AvailabilitySlot, error) {
	slot, err := s.slotRepo.GetByIDForUpdate(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: get slot: %v", ErrInternal, err)
	}
	// чужой слот неотличим от несуществующего
	if slot.CompanionID != companionID {
		return nil, ErrSlotNotFound
	}
	return slot, nil
}

func (s *Service) logFailure(op string, companionID int64, err error) {
	if errors.Is(err, ErrInternal) {
		s.logger.Error("%s: companion=%d: %v", op, companionID, err)
		return
	}
	s.logger.Warn("%s: companion=%d: %v", op, companionID, err)
}
