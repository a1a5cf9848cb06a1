package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/ShareIt-BookingService/internal/api/handlers"
)

// UserIDHeader заголовок с ID вызывающего пользователя
const UserIDHeader = "X-Sharer-User-Id"

const (
	msgMissingUserID = "отсутствует заголовок " + UserIDHeader
	msgInvalidUserID = "некорректный заголовок " + UserIDHeader
)

type contextKey string

const userIDKey contextKey = "user_id"

// Auth извлекает ID пользователя из заголовка и кладёт его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidUserID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID кладёт ID пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID достаёт ID пользователя, положенный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
