package models

import "github.com/m04kA/ShareIt-BookingService/internal/domain"

// CreateRequest данные нового пользователя
type CreateRequest struct {
	Name  string
	Email string
}

// UserResponse пользователь
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FromDomainUser конвертирует доменную модель в ответ
func FromDomainUser(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
