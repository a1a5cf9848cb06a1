package bookings

import (
	"context"
	"time"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingDetails, error)
	ListByBooker(ctx context.Context, bookerID int64, cond domain.StateCondition, page domain.Page) ([]*domain.BookingDetails, error)
	ListByOwner(ctx context.Context, ownerID int64, cond domain.StateCondition, page domain.Page) ([]*domain.BookingDetails, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository интерфейс справочника пользователей
type UserRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий бронирования
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// TransitionRecorder учёт смены статусов в метриках
type TransitionRecorder interface {
	RecordBookingTransition(status string)
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
