package itembookings

import (
	"context"
	"time"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
)

// BookingRepository выборки крайних подтверждённых бронирований
type BookingRepository interface {
	LatestApprovedByItems(ctx context.Context, itemIDs []int64, now time.Time) ([]*domain.Booking, error)
	NextApprovedByItems(ctx context.Context, itemIDs []int64, now time.Time) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
