package domain

import (
	"time"
)

// BookingStatus сохранённый статус бронирования
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	StatusCanceled BookingStatus = "CANCELED"
)

// IsValid true для известных статусов
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// Booking запрос пользователя на использование чужой вещи в интервале [Start, End)
type Booking struct {
	ID       int64
	Start    time.Time
	End      time.Time
	ItemID   int64
	BookerID int64
	Status   BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsApproved true, если бронирование уже подтверждено владельцем
func (b *Booking) IsApproved() bool {
	return b.Status == StatusApproved
}

// BookingDetails бронирование вместе с вещью и арендатором
type BookingDetails struct {
	Booking
	Item   Item
	Booker User
}

// IsVisibleTo может ли пользователь видеть бронирование: только арендатор и владелец вещи
func (d *BookingDetails) IsVisibleTo(userID int64) bool {
	return d.BookerID == userID || d.Item.OwnerID == userID
}

// ApprovalStatus статус после решения владельца
func ApprovalStatus(approved bool) BookingStatus {
	if approved {
		return StatusApproved
	}
	return StatusRejected
}
