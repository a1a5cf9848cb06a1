package itembookings

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
)

// Service последнее и ближайшее подтверждённое бронирование по набору вещей.
// Каждое направление считается одним запросом на весь набор.
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(bookingRepo BookingRepository, timeProvider TimeProvider, logger Logger) *Service {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// LatestApprovedPerItem для каждой вещи подтверждённое бронирование с наибольшим
// началом среди start <= now. Вещи без таких бронирований в результат не попадают.
func (s *Service) LatestApprovedPerItem(ctx context.Context, itemIDs []int64) (map[int64]*domain.Booking, error) {
	return s.perItem(ctx, "LatestApprovedPerItem", itemIDs, s.bookingRepo.LatestApprovedByItems)
}

// NextApprovedPerItem для каждой вещи подтверждённое бронирование с наименьшим
// началом среди start >= now
func (s *Service) NextApprovedPerItem(ctx context.Context, itemIDs []int64) (map[int64]*domain.Booking, error) {
	return s.perItem(ctx, "NextApprovedPerItem", itemIDs, s.bookingRepo.NextApprovedByItems)
}

type edgeFunc func(ctx context.Context, itemIDs []int64, now time.Time) ([]*domain.Booking, error)

func (s *Service) perItem(ctx context.Context, op string, itemIDs []int64, fetch edgeFunc) (map[int64]*domain.Booking, error) {
	result := make(map[int64]*domain.Booking, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}

	list, err := fetch(ctx, dedup(itemIDs), s.timeProvider.Now())
	if err != nil {
		s.logger.Error("%s: repository error for %d items: %v", op, len(itemIDs), err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	// при одинаковом начале побеждает меньший id
	for _, b := range list {
		if cur, ok := result[b.ItemID]; !ok || b.ID < cur.ID {
			result[b.ItemID] = b
		}
	}

	return result, nil
}

func dedup(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
