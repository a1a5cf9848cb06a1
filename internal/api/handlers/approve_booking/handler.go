package approve_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/ShareIt-BookingService/internal/api/handlers"
	"github.com/m04kA/ShareIt-BookingService/internal/api/middleware"
	"github.com/m04kA/ShareIt-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgInvalidApproved     = "параметр approved должен быть true или false"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgNotFound            = "бронирование не найдено"
	msgAlreadyApproved     = "бронирование уже подтверждено"
	msgConcurrentModifying = "бронирование изменено параллельно, повторите запрос"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}?approved=true|false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid approved flag: %v", err)
		handlers.RespondBadRequest(w, msgInvalidApproved)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	booking, err := h.service.Approve(r.Context(), bookingID, approved, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound), errors.Is(err, bookings.ErrNotOwner):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found for owner: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAlreadyApproved):
			h.logger.Warn("PATCH /bookings/{id} - Already approved: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyApproved)

		case errors.Is(err, bookings.ErrConcurrentModification):
			h.logger.Warn("PATCH /bookings/{id} - Concurrent modification: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgConcurrentModifying)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to approve booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking %s: booking_id=%d, owner_id=%d", booking.Status, bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
