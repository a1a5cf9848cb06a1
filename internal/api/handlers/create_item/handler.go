package create_item

import (
	"errors"
	"net/http"

	"github.com/m04kA/ShareIt-BookingService/internal/api/handlers"
	"github.com/m04kA/ShareIt-BookingService/internal/api/middleware"
	"github.com/m04kA/ShareIt-BookingService/internal/service/items"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgUserNotFound       = "пользователь не найден"
)

type Handler struct {
	service ItemService
	logger  Logger
}

func NewHandler(service ItemService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/items
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /items - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /items - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /items - Validation failed: %v", err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
		return
	}

	item, err := h.service.Create(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		if errors.Is(err, items.ErrUserNotFound) {
			h.logger.Warn("POST /items - Owner not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)
			return
		}
		h.logger.Error("POST /items - Failed to create item: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /items - Item created: item_id=%d, owner_id=%d", item.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, item)
}
