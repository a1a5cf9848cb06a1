package get_booker_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/ShareIt-BookingService/internal/api/handlers"
	"github.com/m04kA/ShareIt-BookingService/internal/api/middleware"
	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	"github.com/m04kA/ShareIt-BookingService/internal/service/bookings"
	"github.com/m04kA/ShareIt-BookingService/internal/service/bookings/models"
)

const (
	msgMissingUserID     = "отсутствует ID пользователя"
	msgUserNotFound      = "пользователь не найден"
	msgInvalidPagination = "некорректные параметры пагинации: from >= 0, size > 0"
	msgUnknownState      = "Unknown state: UNSUPPORTED_STATUS"
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

// Handle GET /api/v1/bookings?state=ALL&from=0&size=10
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	from, err := handlers.QueryInt(r, "from", domain.DefaultPageFrom)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPagination)
		return
	}
	size, err := handlers.QueryInt(r, "size", domain.DefaultPageSize)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid size: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPagination)
		return
	}

	result, err := h.service.ListByBooker(r.Context(), &models.ListRequest{
		UserID: userID,
		State:  r.URL.Query().Get("state"),
		From:   from,
		Size:   size,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrUserNotFound):
			h.logger.Warn("GET /bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, bookings.ErrInvalidPagination):
			h.logger.Warn("GET /bookings - Invalid pagination: from=%d, size=%d", from, size)
			handlers.RespondBadRequest(w, msgInvalidPagination)

		case errors.Is(err, bookings.ErrUnknownState):
			h.logger.Warn("GET /bookings - Unknown state: %v", err)
			handlers.RespondBadRequest(w, msgUnknownState)

		default:
			h.logger.Error("GET /bookings - Failed to get bookings: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: user_id=%d, count=%d", userID, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
