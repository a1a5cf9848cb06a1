package get_item

import (
	"errors"
	"net/http"

	"github.com/m04kA/ShareIt-BookingService/internal/api/handlers"
	"github.com/m04kA/ShareIt-BookingService/internal/api/middleware"
	"github.com/m04kA/ShareIt-BookingService/internal/service/items"
)

const (
	msgInvalidItemID = "некорректный ID вещи"
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "вещь не найдена"
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

// Handle GET /api/v1/items/{itemId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := handlers.PathInt64(r, "itemId")
	if err != nil {
		h.logger.Warn("GET /items/{id} - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /items/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	item, err := h.service.GetByID(r.Context(), itemID, userID)
	if err != nil {
		if errors.Is(err, items.ErrItemNotFound) {
			h.logger.Warn("GET /items/{id} - Item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /items/{id} - Failed to get item: item_id=%d, error=%v", itemID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, item)
}
