package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	itemRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/item"
	userRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/user"
	"github.com/m04kA/ShareIt-BookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	userRepo      UserRepository
	itemRepo      ItemRepository
	txManager     TransactionManager
	publisher     EventPublisher
	timeProvider  TimeProvider
	logger        Logger
	forbidOverlap bool
}

// Option настройка use case
type Option func(*UseCase)

// WithOverlapCheck включает запрет пересечения с подтверждёнными бронированиями
func WithOverlapCheck(enabled bool) Option {
	return func(uc *UseCase) {
		uc.forbidOverlap = enabled
	}
}

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(uc *UseCase) {
		uc.timeProvider = tp
	}
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	itemRepo ItemRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		itemRepo:     itemRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверки и запись выполняются в сериализуемой транзакции, строка вещи
// блокируется, поэтому конкурентные бронирования одной вещи выполняются по очереди.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: booker=%d, item=%d, start=%s, end=%s",
		req.BookerID, req.ItemID, domain.FormatDateTime(req.Start), domain.FormatDateTime(req.End))

	// 1. Валидация интервала в точности хранения
	req.Start = domain.NormalizeDateTime(req.Start)
	req.End = domain.NormalizeDateTime(req.End)
	if err := validateTimeRange(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var (
		booker  *domain.User
		item    *domain.Item
		created *domain.Booking
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Арендатор
		var err error
		booker, err = uc.userRepo.GetByID(txCtx, req.BookerID)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				uc.logger.Warn("CreateBooking: user id=%d not found", req.BookerID)
				return ErrUserNotFound
			}
			uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.BookerID, err)
			return fmt.Errorf("%w: failed to get user: %w", ErrInternal, err)
		}

		// 3. Вещь (с блокировкой строки)
		item, err = uc.itemRepo.GetByIDForUpdate(txCtx, req.ItemID)
		if err != nil {
			if errors.Is(err, itemRepo.ErrItemNotFound) {
				uc.logger.Warn("CreateBooking: item id=%d not found", req.ItemID)
				return ErrItemNotFound
			}
			uc.logger.Error("CreateBooking: failed to get item id=%d: %v", req.ItemID, err)
			return fmt.Errorf("%w: failed to get item: %w", ErrInternal, err)
		}

		// 4. Доступность
		if !item.Available {
			uc.logger.Warn("CreateBooking: item id=%d is not available", item.ID)
			return ErrItemNotAvailable
		}

		// 5. Владелец не может бронировать свою вещь
		if item.OwnerID == req.BookerID {
			uc.logger.Warn("CreateBooking: user id=%d tried to book own item id=%d", req.BookerID, item.ID)
			return ErrSelfBookingForbidden
		}

		// 6. Пересечение с подтверждёнными бронированиями
		if uc.forbidOverlap {
			overlap, err := uc.bookingRepo.HasApprovedOverlap(txCtx, item.ID, req.Start, req.End)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to check overlap for item id=%d: %v", item.ID, err)
				return fmt.Errorf("%w: failed to check overlap: %w", ErrInternal, err)
			}
			if overlap {
				uc.logger.Warn("CreateBooking: item id=%d already booked for requested period", item.ID)
				return ErrBookingOverlap
			}
		}

		// 7. Создаём бронирование в статусе WAITING
		now := uc.timeProvider.Now()
		created, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			Start:     req.Start,
			End:       req.End,
			ItemID:    item.ID,
			BookerID:  booker.ID,
			Status:    domain.StatusWaiting,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: serialization failure for item id=%d: %v", req.ItemID, err)
			return nil, ErrConcurrentModification
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking id=%d created for item id=%d", created.ID, item.ID)

	uc.publish(ctx, created, item)

	return toResponse(created, item, booker), nil
}

func (uc *UseCase) publish(ctx context.Context, b *domain.Booking, item *domain.Item) {
	event := domain.BookingEvent{
		BookingID:  b.ID,
		ItemID:     b.ItemID,
		BookerID:   b.BookerID,
		OwnerID:    item.OwnerID,
		Status:     b.Status,
		Start:      b.Start,
		End:        b.End,
		OccurredAt: b.CreatedAt,
	}
	if err := uc.publisher.PublishJSON(ctx, domain.EventBookingCreated, event); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for booking id=%d: %v", b.ID, err)
	}
}

// validateTimeRange проверяет, что оба конца заданы, start < end
// и бронирование не начинается в прошлом
func validateTimeRange(req *Request, now time.Time) error {
	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidTimeRange)
	}
	if !req.Start.Before(req.End) {
		return fmt.Errorf("%w: start=%s, end=%s", ErrInvalidTimeRange,
			domain.FormatDateTime(req.Start), domain.FormatDateTime(req.End))
	}
	if req.Start.Before(domain.NormalizeDateTime(now)) {
		return fmt.Errorf("%w: start=%s is in the past", ErrInvalidTimeRange, domain.FormatDateTime(req.Start))
	}
	return nil
}

func toResponse(b *domain.Booking, item *domain.Item, booker *domain.User) *Response {
	return &Response{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Item: ItemSummary{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Available:   item.Available,
			RequestID:   item.RequestID,
		},
		Booker: BookerSummary{
			ID:    booker.ID,
			Name:  booker.Name,
			Email: booker.Email,
		},
	}
}
