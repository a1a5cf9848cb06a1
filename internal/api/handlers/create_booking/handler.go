package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/ShareIt-BookingService/internal/api/handlers"
	"github.com/m04kA/ShareIt-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/ShareIt-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateTime     = "некорректный формат даты, ожидается YYYY-MM-DDTHH:MM:SS"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidTimeRange    = "начало бронирования должно быть раньше окончания"
	msgUserNotFound        = "пользователь не найден"
	msgItemNotFound        = "вещь не найдена"
	msgItemNotAvailable    = "вещь недоступна для бронирования"
	msgSelfBooking         = "владелец не может бронировать свою вещь"
	msgBookingOverlap      = "вещь уже забронирована на этот период"
	msgConcurrentModifying = "бронирование изменено параллельно, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: user_id=%d, item_id=%d", userID, req.ItemID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrItemNotFound):
			h.logger.Warn("POST /bookings - Item not found: item_id=%d", req.ItemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, createBooking.ErrItemNotAvailable):
			h.logger.Warn("POST /bookings - Item not available: item_id=%d", req.ItemID)
			handlers.RespondBadRequest(w, msgItemNotAvailable)

		case errors.Is(err, createBooking.ErrSelfBookingForbidden):
			h.logger.Warn("POST /bookings - Self booking: user_id=%d, item_id=%d", userID, req.ItemID)
			handlers.RespondBadRequest(w, msgSelfBooking)

		case errors.Is(err, createBooking.ErrBookingOverlap):
			h.logger.Warn("POST /bookings - Overlap: user_id=%d, item_id=%d", userID, req.ItemID)
			handlers.RespondConflict(w, msgBookingOverlap)

		case errors.Is(err, createBooking.ErrConcurrentModification):
			h.logger.Warn("POST /bookings - Concurrent modification: item_id=%d", req.ItemID)
			handlers.RespondConflict(w, msgConcurrentModifying)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, item_id=%d, error=%v",
				userID, req.ItemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, item_id=%d",
		result.ID, userID, req.ItemID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
