package create_user

import (
	"context"

	"github.com/m04kA/ShareIt-BookingService/internal/service/users/models"
)

type UserService interface {
	Create(ctx context.Context, req *models.CreateRequest) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
