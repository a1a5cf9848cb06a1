package models

import (
	"github.com/m04kA/ShareIt-BookingService/internal/domain"
)

// Request модели

// ListRequest запрос списка бронирований арендатора или владельца
type ListRequest struct {
	UserID int64
	State  string
	From   int
	Size   int
}

// Response модели

// BookingResponse бронирование с вещью и арендатором
type BookingResponse struct {
	ID     int64         `json:"id"`
	Start  string        `json:"start"`
	End    string        `json:"end"`
	Item   ItemSummary   `json:"item"`
	Booker BookerSummary `json:"booker"`
	Status string        `json:"status"`
}

// ItemSummary краткие данные вещи
type ItemSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

// BookerSummary краткие данные арендатора
type BookerSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FromDomainBooking конвертирует доменную модель в ответ
func FromDomainBooking(d *domain.BookingDetails) *BookingResponse {
	return &BookingResponse{
		ID:    d.ID,
		Start: domain.FormatDateTime(d.Start),
		End:   domain.FormatDateTime(d.End),
		Item: ItemSummary{
			ID:          d.Item.ID,
			Name:        d.Item.Name,
			Description: d.Item.Description,
			Available:   d.Item.Available,
			RequestID:   d.Item.RequestID,
		},
		Booker: BookerSummary{
			ID:    d.Booker.ID,
			Name:  d.Booker.Name,
			Email: d.Booker.Email,
		},
		Status: string(d.Status),
	}
}

// FromDomainBookingList конвертирует список, сохраняя порядок
func FromDomainBookingList(list []*domain.BookingDetails) []*BookingResponse {
	result := make([]*BookingResponse, 0, len(list))
	for _, d := range list {
		result = append(result, FromDomainBooking(d))
	}
	return result
}
