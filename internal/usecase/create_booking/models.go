package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	BookerID int64     // ID арендатора (из заголовка)
	ItemID   int64     // ID вещи
	Start    time.Time // Начало аренды
	End      time.Time // Окончание аренды
}

// Response созданное бронирование с вещью и арендатором
type Response struct {
	ID     int64
	Start  time.Time
	End    time.Time
	Status string

	Item   ItemSummary
	Booker BookerSummary
}

// ItemSummary краткие данные вещи
type ItemSummary struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// BookerSummary краткие данные арендатора
type BookerSummary struct {
	ID    int64
	Name  string
	Email string
}
