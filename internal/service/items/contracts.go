package items

import (
	"context"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
)

// ItemRepository интерфейс репозитория вещей
type ItemRepository interface {
	Create(ctx context.Context, it *domain.Item) (*domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Item, error)
	Update(ctx context.Context, it *domain.Item) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Item, error)
}

// UserRepository интерфейс справочника пользователей
type UserRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// ItemBookings последнее и ближайшее подтверждённое бронирование по вещам
type ItemBookings interface {
	LatestApprovedPerItem(ctx context.Context, itemIDs []int64) (map[int64]*domain.Booking, error)
	NextApprovedPerItem(ctx context.Context, itemIDs []int64) (map[int64]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
