package get_booker_bookings

import (
	"context"

	"github.com/m04kA/ShareIt-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	ListByBooker(ctx context.Context, req *models.ListRequest) ([]*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
