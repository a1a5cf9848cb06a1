package create_booking

import "errors"

var (
	// ErrInvalidTimeRange возвращается, если начало не раньше окончания
	ErrInvalidTimeRange = errors.New("create_booking: start must be before end")

	// ErrUserNotFound возвращается, когда арендатор не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrItemNotFound возвращается, когда вещь не найдена
	ErrItemNotFound = errors.New("create_booking: item not found")

	// ErrItemNotAvailable возвращается, когда вещь недоступна для аренды
	ErrItemNotAvailable = errors.New("create_booking: item is not available")

	// ErrSelfBookingForbidden возвращается при попытке забронировать свою вещь
	ErrSelfBookingForbidden = errors.New("create_booking: owner cannot book own item")

	// ErrBookingOverlap возвращается, когда интервал пересекается с подтверждённым бронированием
	ErrBookingOverlap = errors.New("create_booking: item is already booked for this period")

	// ErrConcurrentModification возвращается, если БД отклонила транзакцию из-за конкурентной записи
	ErrConcurrentModification = errors.New("create_booking: concurrent modification, retry the request")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
