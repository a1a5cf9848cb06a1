package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/ShareIt-BookingService/internal/api/handlers"
)

const msgAdminOnly = "операция доступна только администратору"

// RequireAdmin пропускает только пользователей из adminIDs.
// Ставится после Auth. Пустой список закрывает маршрут для всех.
func RequireAdmin(adminIDs []int64) mux.MiddlewareFunc {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}
			if _, ok := admins[userID]; !ok {
				handlers.RespondForbidden(w, msgAdminOnly)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
