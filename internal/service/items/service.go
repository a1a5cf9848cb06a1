package items

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	itemRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/item"
	"github.com/m04kA/ShareIt-BookingService/internal/service/items/models"
)

// Service сервис справочника вещей
type Service struct {
	itemRepo     ItemRepository
	userRepo     UserRepository
	itemBookings ItemBookings
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса вещей
func NewService(
	itemRepo ItemRepository,
	userRepo UserRepository,
	itemBookings ItemBookings,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		itemRepo:     itemRepo,
		userRepo:     userRepo,
		itemBookings: itemBookings,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create добавляет вещь владельца
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.ItemResponse, error) {
	s.logger.Info("Create: owner=%d, name=%s", req.OwnerID, req.Name)

	if err := s.ensureUser(ctx, "Create", req.OwnerID); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.Create(ctx, &domain.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		OwnerID:     req.OwnerID,
		RequestID:   req.RequestID,
	})
	if err != nil {
		if errors.Is(err, itemRepo.ErrOwnerNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: item id=%d created", item.ID)
	return models.FromDomainItem(item, nil, nil), nil
}

// Patch меняет переданные поля. Чужую вещь изменить нельзя,
// вызывающий получает ту же ошибку, что и для несуществующей.
func (s *Service) Patch(ctx context.Context, req *models.PatchRequest) (*models.ItemResponse, error) {
	s.logger.Info("Patch: item id=%d by user=%d", req.ItemID, req.OwnerID)

	var result *domain.Item

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		item, err := s.itemRepo.GetByIDForUpdate(txCtx, req.ItemID)
		if err != nil {
			if errors.Is(err, itemRepo.ErrItemNotFound) {
				s.logger.Warn("Patch: item id=%d not found", req.ItemID)
				return ErrItemNotFound
			}
			return fmt.Errorf("%w: Patch - get item: %w", ErrInternal, err)
		}

		if item.OwnerID != req.OwnerID {
			s.logger.Warn("Patch: user=%d is not owner of item id=%d", req.OwnerID, req.ItemID)
			return ErrItemNotFound
		}

		domain.ItemPatch{
			Name:        req.Name,
			Description: req.Description,
			Available:   req.Available,
		}.Apply(item)

		if err := s.itemRepo.Update(txCtx, item); err != nil {
			return fmt.Errorf("%w: Patch - update item: %w", ErrInternal, err)
		}

		result = item
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Patch: %v", err)
		}
		return nil, err
	}

	return models.FromDomainItem(result, nil, nil), nil
}

// GetByID получает вещь. Последнее и ближайшее бронирование видит только владелец.
func (s *Service) GetByID(ctx context.Context, itemID, userID int64) (*models.ItemResponse, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, itemRepo.ErrItemNotFound) {
			s.logger.Warn("GetByID: item id=%d not found", itemID)
			return nil, ErrItemNotFound
		}
		s.logger.Error("GetByID: repository error for item id=%d: %v", itemID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	if item.OwnerID != userID {
		return models.FromDomainItem(item, nil, nil), nil
	}

	list, err := s.withBookings(ctx, "GetByID", []*domain.Item{item})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

// ListByOwner вещи владельца по возрастанию id с последним и ближайшим бронированием
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]*models.ItemResponse, error) {
	s.logger.Info("ListByOwner: owner=%d", ownerID)

	if err := s.ensureUser(ctx, "ListByOwner", ownerID); err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("ListByOwner: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListByOwner - repository error: %w", ErrInternal, err)
	}

	return s.withBookings(ctx, "ListByOwner", items)
}

func (s *Service) withBookings(ctx context.Context, op string, items []*domain.Item) ([]*models.ItemResponse, error) {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	// последнее и ближайшее читаются из одного снимка
	var last, next map[int64]*domain.Booking
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		last, err = s.itemBookings.LatestApprovedPerItem(txCtx, ids)
		if err != nil {
			return fmt.Errorf("%w: %s - last bookings: %w", ErrInternal, op, err)
		}
		next, err = s.itemBookings.NextApprovedPerItem(txCtx, ids)
		if err != nil {
			return fmt.Errorf("%w: %s - next bookings: %w", ErrInternal, op, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("%s: failed to load bookings for items: %v", op, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s - read bookings: %w", ErrInternal, op, err)
	}

	result := make([]*models.ItemResponse, 0, len(items))
	for _, it := range items {
		result = append(result, models.FromDomainItem(it, last[it.ID], next[it.ID]))
	}
	return result, nil
}

func (s *Service) ensureUser(ctx context.Context, op string, userID int64) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		s.logger.Error("%s: failed to check user=%d: %v", op, userID, err)
		return fmt.Errorf("%w: %s - check user: %w", ErrInternal, op, err)
	}
	if !exists {
		s.logger.Warn("%s: user=%d not found", op, userID)
		return ErrUserNotFound
	}
	return nil
}
