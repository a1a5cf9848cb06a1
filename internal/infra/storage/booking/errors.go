package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrStatusConflict возвращается, когда статус изменился конкурентно
	// (бронирование уже подтверждено)
	ErrStatusConflict = errors.New("booking.repository: booking status changed concurrently")

	// ErrInvalidStatus возвращается при попытке записать неизвестный статус
	ErrInvalidStatus = errors.New("booking.repository: invalid booking status")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
