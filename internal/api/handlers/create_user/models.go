package create_user

import "github.com/m04kA/ShareIt-BookingService/internal/service/users/models"

// CreateUserRequest HTTP request model
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateUserRequest) ToServiceRequest() *models.CreateRequest {
	return &models.CreateRequest{
		Name:  r.Name,
		Email: r.Email,
	}
}
