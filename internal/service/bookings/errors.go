package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	// или недоступно вызывающему пользователю
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("bookings: user not found")

	// ErrAlreadyApproved возвращается при повторном решении по подтверждённому бронированию
	ErrAlreadyApproved = errors.New("bookings: booking is already approved")

	// ErrNotOwner возвращается, когда решение принимает не владелец вещи
	ErrNotOwner = errors.New("bookings: only the item owner can approve or reject a booking")

	// ErrInvalidPagination возвращается при from < 0 или size <= 0
	ErrInvalidPagination = errors.New("bookings: invalid pagination")

	// ErrUnknownState возвращается для неизвестного фильтра state
	ErrUnknownState = errors.New("bookings: unknown state")

	// ErrConcurrentModification возвращается, если БД отклонила транзакцию из-за конкурентной записи
	ErrConcurrentModification = errors.New("bookings: concurrent modification, retry the request")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
