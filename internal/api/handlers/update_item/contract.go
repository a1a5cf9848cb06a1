package update_item

import (
	"context"

	"github.com/m04kA/ShareIt-BookingService/internal/service/items/models"
)

type ItemService interface {
	Patch(ctx context.Context, req *models.PatchRequest) (*models.ItemResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
