package create_item

import (
	"github.com/m04kA/ShareIt-BookingService/internal/service/items/models"
	"github.com/m04kA/ShareIt-BookingService/pkg/ptr"
)

// CreateItemRequest HTTP request model
type CreateItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateItemRequest) ToServiceRequest(ownerID int64) *models.CreateRequest {
	return &models.CreateRequest{
		OwnerID:     ownerID,
		Name:        r.Name,
		Description: r.Description,
		Available:   ptr.Value(r.Available),
		RequestID:   r.RequestID,
	}
}
