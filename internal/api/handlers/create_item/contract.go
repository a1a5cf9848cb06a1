package create_item

import (
	"context"

	"github.com/m04kA/ShareIt-BookingService/internal/service/items/models"
)

type ItemService interface {
	Create(ctx context.Context, req *models.CreateRequest) (*models.ItemResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
