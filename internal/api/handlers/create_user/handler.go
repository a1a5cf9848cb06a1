package create_user

import (
	"errors"
	"net/http"

	"github.com/m04kA/ShareIt-BookingService/internal/api/handlers"
	"github.com/m04kA/ShareIt-BookingService/internal/service/users"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmailExists        = "пользователь с таким email уже существует"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/users
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /users - Validation failed: %v", err)
		handlers.RespondBadRequest(w, handlers.ValidationMessage(err))
		return
	}

	user, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		if errors.Is(err, users.ErrEmailAlreadyExists) {
			h.logger.Warn("POST /users - Email already exists: %s", req.Email)
			handlers.RespondConflict(w, msgEmailExists)
			return
		}
		h.logger.Error("POST /users - Failed to create user: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /users - User created: user_id=%d", user.ID)
	handlers.RespondJSON(w, http.StatusCreated, user)
}
