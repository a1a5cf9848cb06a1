package update_item

import (
	"github.com/m04kA/ShareIt-BookingService/internal/service/items/models"
)

// UpdateItemRequest HTTP request model, переданы могут быть не все поля
type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitnil,min=1"`
	Description *string `json:"description,omitempty" validate:"omitnil,min=1"`
	Available   *bool   `json:"available,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateItemRequest) ToServiceRequest(itemID, ownerID int64) *models.PatchRequest {
	return &models.PatchRequest{
		ItemID:      itemID,
		OwnerID:     ownerID,
		Name:        r.Name,
		Description: r.Description,
		Available:   r.Available,
	}
}
