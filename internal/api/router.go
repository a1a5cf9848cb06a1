package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	approveBookingHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/approve_booking"
	createBookingHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/create_booking"
	createItemHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/create_item"
	createUserHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/create_user"
	deleteBookingHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/delete_booking"
	getBookerBookingsHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/get_booker_bookings"
	getBookingHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/get_booking"
	getItemHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/get_item"
	getOwnerBookingsHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/get_owner_bookings"
	getOwnerItemsHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/get_owner_items"
	getUserHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/get_user"
	updateItemHandler "github.com/m04kA/ShareIt-BookingService/internal/api/handlers/update_item"
	"github.com/m04kA/ShareIt-BookingService/internal/api/middleware"
	bookingsService "github.com/m04kA/ShareIt-BookingService/internal/service/bookings"
	itemsService "github.com/m04kA/ShareIt-BookingService/internal/service/items"
	usersService "github.com/m04kA/ShareIt-BookingService/internal/service/users"
	createBookingUC "github.com/m04kA/ShareIt-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/ShareIt-BookingService/pkg/metrics"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Dependencies сервисы, которые обслуживает HTTP API
type Dependencies struct {
	CreateBooking *createBookingUC.UseCase
	Bookings      *bookingsService.Service
	Users         *usersService.Service
	Items         *itemsService.Service

	// AdminUserIDs кому разрешено удалять бронирования
	AdminUserIDs []int64
}

// MetricsOptions публикация prometheus метрик; nil Collector отключает метрики
type MetricsOptions struct {
	Collector   *metrics.Metrics
	ServiceName string
	Path        string
}

// NewRouter собирает маршруты /api/v1
func NewRouter(deps Dependencies, log Logger, mo MetricsOptions) *mux.Router {
	createBooking := createBookingHandler.NewHandler(deps.CreateBooking, log)
	approveBooking := approveBookingHandler.NewHandler(deps.Bookings, log)
	getBooking := getBookingHandler.NewHandler(deps.Bookings, log)
	getBookerBookings := getBookerBookingsHandler.NewHandler(deps.Bookings, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(deps.Bookings, log)
	deleteBooking := deleteBookingHandler.NewHandler(deps.Bookings, log)
	createUser := createUserHandler.NewHandler(deps.Users, log)
	getUser := getUserHandler.NewHandler(deps.Users, log)
	createItem := createItemHandler.NewHandler(deps.Items, log)
	updateItem := updateItemHandler.NewHandler(deps.Items, log)
	getItem := getItemHandler.NewHandler(deps.Items, log)
	getOwnerItems := getOwnerItemsHandler.NewHandler(deps.Items, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if mo.Collector != nil {
		r.Use(middleware.MetricsMiddleware(mo.Collector, mo.ServiceName))
		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(mo.Path, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/users", createUser.Handle).Methods(http.MethodPost)
	api.HandleFunc("/users/{userId:[0-9]+}", getUser.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Sharer-User-Id header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getBookerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/owner", getOwnerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", approveBooking.Handle).Methods(http.MethodPatch)

	// --- Вещи ---
	protected.HandleFunc("/items", createItem.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/items", getOwnerItems.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/items/{itemId:[0-9]+}", getItem.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/items/{itemId:[0-9]+}", updateItem.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (X-Sharer-User-Id из server.admin_user_ids)
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin(deps.AdminUserIDs))

	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)

	return r
}
