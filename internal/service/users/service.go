package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	userRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/user"
	"github.com/m04kA/ShareIt-BookingService/internal/service/users/models"
)

// Service сервис справочника пользователей
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create регистрирует пользователя
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.UserResponse, error) {
	s.logger.Info("Create: registering user email=%s", req.Email)

	user, err := s.userRepo.Create(ctx, &domain.User{Name: req.Name, Email: req.Email})
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailAlreadyExists) {
			s.logger.Warn("Create: email=%s is already taken", req.Email)
			return nil, ErrEmailAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: user id=%d created", user.ID)
	return models.FromDomainUser(user), nil
}

// GetByID получает пользователя по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetByID: user id=%d not found", id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetByID: repository error for user id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainUser(user), nil
}
