package domain

import "time"

// Ключи маршрутизации событий бронирования
const (
	EventBookingCreated  = "booking.created"
	EventBookingApproved = "booking.approved"
	EventBookingRejected = "booking.rejected"
)

// BookingEvent событие изменения бронирования
type BookingEvent struct {
	BookingID  int64         `json:"bookingId"`
	ItemID     int64         `json:"itemId"`
	BookerID   int64         `json:"bookerId"`
	OwnerID    int64         `json:"ownerId"`
	Status     BookingStatus `json:"status"`
	Start      time.Time     `json:"start"`
	End        time.Time     `json:"end"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// EventKeyForStatus ключ события для нового статуса
func EventKeyForStatus(status BookingStatus) string {
	switch status {
	case StatusApproved:
		return EventBookingApproved
	case StatusRejected:
		return EventBookingRejected
	default:
		return EventBookingCreated
	}
}
