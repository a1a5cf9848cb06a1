package models

import "github.com/m04kA/ShareIt-BookingService/internal/domain"

// Request модели

// CreateRequest данные новой вещи
type CreateRequest struct {
	OwnerID     int64
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// PatchRequest частичное обновление вещи
type PatchRequest struct {
	ItemID      int64
	OwnerID     int64
	Name        *string
	Description *string
	Available   *bool
}

// Response модели

// ItemResponse вещь с последним и ближайшим бронированием
type ItemResponse struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Available   bool          `json:"available"`
	RequestID   *int64        `json:"requestId"`
	LastBooking *BookingShort `json:"lastBooking"`
	NextBooking *BookingShort `json:"nextBooking"`
}

// BookingShort бронирование в карточке вещи
type BookingShort struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// FromDomainItem конвертирует вещь; last и next могут быть nil
func FromDomainItem(it *domain.Item, last, next *domain.Booking) *ItemResponse {
	return &ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
		LastBooking: shortBooking(last),
		NextBooking: shortBooking(next),
	}
}

func shortBooking(b *domain.Booking) *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{ID: b.ID, BookerID: b.BookerID}
}
