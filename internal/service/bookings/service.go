package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/ShareIt-BookingService/internal/service/bookings/models"
	"github.com/m04kA/ShareIt-BookingService/pkg/txmanager"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	txManager    TransactionManager
	publisher    EventPublisher
	recorder     TransitionRecorder
	timeProvider TimeProvider
	logger       Logger
}

// Option настройка сервиса
type Option func(*Service)

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(s *Service) {
		s.timeProvider = tp
	}
}

// WithTransitionRecorder включает учёт смены статусов
func WithTransitionRecorder(r TransitionRecorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
	opts ...Option,
) *Service {
	s := &Service{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetByID получает бронирование по ID.
// Бронирование видят только арендатор и владелец вещи, остальным
// возвращается та же ошибка, что и для несуществующего ID.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	if !booking.IsVisibleTo(userID) {
		s.logger.Warn("GetByID: user=%d is neither booker nor owner of booking id=%d", userID, id)
		return nil, ErrBookingNotFound
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// Approve подтверждает или отклоняет бронирование владельцем вещи.
// Проверки выполняются в порядке: существование, уже подтверждено, владелец.
func (s *Service) Approve(ctx context.Context, bookingID int64, approved bool, ownerID int64) (*models.BookingResponse, error) {
	s.logger.Info("Approve: booking id=%d, approved=%t, owner=%d", bookingID, approved, ownerID)

	var result *domain.BookingDetails

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Approve: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Approve: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Approve - get booking: %w", ErrInternal, err)
		}

		if booking.IsApproved() {
			s.logger.Warn("Approve: booking id=%d is already approved", bookingID)
			return ErrAlreadyApproved
		}

		if booking.Item.OwnerID != ownerID {
			s.logger.Warn("Approve: user=%d is not owner of item id=%d", ownerID, booking.Item.ID)
			return ErrNotOwner
		}

		status := domain.ApprovalStatus(approved)
		now := s.timeProvider.Now()

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, status, now); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrStatusConflict):
				s.logger.Warn("Approve: booking id=%d was approved concurrently", bookingID)
				return ErrAlreadyApproved
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			}
			s.logger.Error("Approve: failed to update booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Approve - update status: %w", ErrInternal, err)
		}

		booking.Status = status
		booking.UpdatedAt = now
		result = booking
		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			s.logger.Warn("Approve: serialization failure for booking id=%d: %v", bookingID, err)
			return nil, ErrConcurrentModification
		}
		return nil, err
	}

	s.logger.Info("Approve: booking id=%d is now %s", bookingID, result.Status)
	s.afterTransition(ctx, result)

	return models.FromDomainBooking(result), nil
}

// ListByBooker бронирования арендатора
func (s *Service) ListByBooker(ctx context.Context, req *models.ListRequest) ([]*models.BookingResponse, error) {
	return s.list(ctx, "ListByBooker", req, s.bookingRepo.ListByBooker)
}

// ListByOwner бронирования вещей владельца
func (s *Service) ListByOwner(ctx context.Context, req *models.ListRequest) ([]*models.BookingResponse, error) {
	return s.list(ctx, "ListByOwner", req, s.bookingRepo.ListByOwner)
}

type listFunc func(ctx context.Context, subjectID int64, cond domain.StateCondition, page domain.Page) ([]*domain.BookingDetails, error)

func (s *Service) list(ctx context.Context, op string, req *models.ListRequest, fetch listFunc) ([]*models.BookingResponse, error) {
	s.logger.Info("%s: user=%d, state=%s, from=%d, size=%d", op, req.UserID, req.State, req.From, req.Size)

	exists, err := s.userRepo.Exists(ctx, req.UserID)
	if err != nil {
		s.logger.Error("%s: failed to check user=%d: %v", op, req.UserID, err)
		return nil, fmt.Errorf("%w: %s - check user: %w", ErrInternal, op, err)
	}
	if !exists {
		s.logger.Warn("%s: user=%d not found", op, req.UserID)
		return nil, ErrUserNotFound
	}

	page, err := domain.NewPage(req.From, req.Size)
	if err != nil {
		s.logger.Warn("%s: %v", op, err)
		return nil, fmt.Errorf("%w: from=%d, size=%d", ErrInvalidPagination, req.From, req.Size)
	}

	state, err := domain.ParseBookingState(req.State)
	if err != nil {
		s.logger.Warn("%s: %v", op, err)
		return nil, fmt.Errorf("%w: %s", ErrUnknownState, req.State)
	}

	cond, err := state.Condition(s.timeProvider.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownState, req.State)
	}

	list, err := fetch(ctx, req.UserID, cond, page)
	if err != nil {
		s.logger.Error("%s: repository error for user=%d: %v", op, req.UserID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d bookings for user=%d", op, len(list), req.UserID)
	return models.FromDomainBookingList(list), nil
}

// Delete удаляет бронирование (административная операция)
func (s *Service) Delete(ctx context.Context, bookingID int64) error {
	s.logger.Info("Delete: booking id=%d", bookingID)

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: booking id=%d deleted", bookingID)
	return nil
}

// afterTransition метрики и событие; ошибки публикации только логируются
func (s *Service) afterTransition(ctx context.Context, b *domain.BookingDetails) {
	if s.recorder != nil {
		s.recorder.RecordBookingTransition(string(b.Status))
	}

	event := domain.BookingEvent{
		BookingID:  b.ID,
		ItemID:     b.ItemID,
		BookerID:   b.BookerID,
		OwnerID:    b.Item.OwnerID,
		Status:     b.Status,
		Start:      b.Start,
		End:        b.End,
		OccurredAt: b.UpdatedAt,
	}
	if err := s.publisher.PublishJSON(ctx, domain.EventKeyForStatus(b.Status), event); err != nil {
		s.logger.Error("Approve: failed to publish event for booking id=%d: %v", b.ID, err)
	}
}
