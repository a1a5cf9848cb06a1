package items

import "errors"

var (
	// ErrItemNotFound возвращается, когда вещь не найдена
	// или изменять её пытается не владелец
	ErrItemNotFound = errors.New("items: item not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("items: user not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("items: internal error")
)
