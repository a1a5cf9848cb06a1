package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ShareIt-BookingService/internal/api/handlers"
	"github.com/m04kA/ShareIt-BookingService/internal/api/middleware"
	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/ShareIt-BookingService/internal/infra/storage/database"
	itemRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/item"
	userRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/user"
	bookingsService "github.com/m04kA/ShareIt-BookingService/internal/service/bookings"
	bookingModels "github.com/m04kA/ShareIt-BookingService/internal/service/bookings/models"
	"github.com/m04kA/ShareIt-BookingService/internal/service/itembookings"
	itemsService "github.com/m04kA/ShareIt-BookingService/internal/service/items"
	itemModels "github.com/m04kA/ShareIt-BookingService/internal/service/items/models"
	usersService "github.com/m04kA/ShareIt-BookingService/internal/service/users"
	userModels "github.com/m04kA/ShareIt-BookingService/internal/service/users/models"
	createBookingUC "github.com/m04kA/ShareIt-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/ShareIt-BookingService/pkg/dbmetrics"
	"github.com/m04kA/ShareIt-BookingService/pkg/events"
	"github.com/m04kA/ShareIt-BookingService/pkg/logger"
	"github.com/m04kA/ShareIt-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/ShareIt-BookingService/pkg/txmanager"
)

func newTestRouter(t *testing.T, adminIDs ...int64) *mux.Router {
	t.Helper()

	db := dbmetrics.Wrap(database.NewTestDB(t), nil, "test")
	qb := psqlbuilder.New(psqlbuilder.SQLite)
	log := logger.NewNop()

	users := userRepo.NewRepository(db, qb)
	items := itemRepo.NewRepository(db, qb)
	bookings := bookingRepo.NewRepository(db, qb)
	txm := txmanager.NewTransactionManager(db, txmanager.WithoutIsolation())
	publisher := events.Noop{}

	deps := Dependencies{
		CreateBooking: createBookingUC.NewUseCase(bookings, users, items, txm, publisher, log,
			createBookingUC.WithOverlapCheck(true)),
		Bookings: bookingsService.NewService(bookings, users, txm, publisher, log),
		Users:    usersService.NewService(users, log),
		Items: itemsService.NewService(items, users,
			itembookings.NewService(bookings, nil, log), txm, log),
		AdminUserIDs: adminIDs,
	}
	return NewRouter(deps, log, MetricsOptions{})
}

type client struct {
	t      *testing.T
	router http.Handler
}

func (c client) do(method, path string, userID int64, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		r.Header.Set(middleware.UserIDHeader, strconv.FormatInt(userID, 10))
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, r)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (c client) createUser(name string) int64 {
	rec := c.do(http.MethodPost, "/api/v1/users", 0, map[string]string{"name": name, "email": name + "@example.com"})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[userModels.UserResponse](c.t, rec).ID
}

func (c client) createItem(ownerID int64, name string, available bool) int64 {
	rec := c.do(http.MethodPost, "/api/v1/items", ownerID, map[string]interface{}{
		"name": name, "description": name + " for rent", "available": available,
	})
	require.Equal(c.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[itemModels.ItemResponse](c.t, rec).ID
}

func bookingBody(itemID int64, start, end time.Time) map[string]interface{} {
	return map[string]interface{}{
		"itemId": itemID,
		"start":  domain.FormatDateTime(start),
		"end":    domain.FormatDateTime(end),
	}
}

func TestBookingLifecycleScenario(t *testing.T) {
	c := client{t: t, router: newTestRouter(t)}

	u1 := c.createUser("booker")
	u2 := c.createUser("owner")
	u3 := c.createUser("stranger")
	i1 := c.createItem(u2, "tent", true)

	now := time.Now().UTC().Truncate(time.Second)

	rec := c.do(http.MethodPost, "/api/v1/bookings", u1, bookingBody(i1, now.Add(time.Hour), now.Add(2*time.Hour)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[bookingModels.BookingResponse](t, rec)
	assert.Equal(t, "WAITING", created.Status)
	assert.Equal(t, u1, created.Booker.ID)
	assert.Equal(t, i1, created.Item.ID)

	bookingPath := fmt.Sprintf("/api/v1/bookings/%d", created.ID)

	rec = c.do(http.MethodPatch, bookingPath+"?approved=true", u2, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "APPROVED", decode[bookingModels.BookingResponse](t, rec).Status)

	rec = c.do(http.MethodPatch, bookingPath+"?approved=false", u2, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = c.do(http.MethodGet, bookingPath, u1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "APPROVED", decode[bookingModels.BookingResponse](t, rec).Status)

	strangerRec := c.do(http.MethodGet, bookingPath, u3, nil)
	missingRec := c.do(http.MethodGet, "/api/v1/bookings/99999", u3, nil)
	assert.Equal(t, http.StatusNotFound, strangerRec.Code)
	assert.Equal(t, missingRec.Code, strangerRec.Code)
	assert.JSONEq(t, missingRec.Body.String(), strangerRec.Body.String())

	t.Run("owner item card shows next booking", func(t *testing.T) {
		rec := c.do(http.MethodGet, fmt.Sprintf("/api/v1/items/%d", i1), u2, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		item := decode[itemModels.ItemResponse](t, rec)
		require.NotNil(t, item.NextBooking)
		assert.Equal(t, itemModels.BookingShort{ID: created.ID, BookerID: u1}, *item.NextBooking)
		assert.Nil(t, item.LastBooking)

		rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/items/%d", i1), u1, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, decode[itemModels.ItemResponse](t, rec).NextBooking)
	})

	t.Run("listings", func(t *testing.T) {
		rec := c.do(http.MethodGet, "/api/v1/bookings?state=future", u1, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]bookingModels.BookingResponse](t, rec), 1)

		rec = c.do(http.MethodGet, "/api/v1/bookings?state=PAST", u1, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode[[]bookingModels.BookingResponse](t, rec))

		rec = c.do(http.MethodGet, "/api/v1/bookings/owner", u2, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]bookingModels.BookingResponse](t, rec), 1)

		rec = c.do(http.MethodGet, "/api/v1/bookings?state=UNSUPPORTED_STATUS", u1, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Unknown state: UNSUPPORTED_STATUS", decode[handlers.ErrorResponse](t, rec).Message)

		rec = c.do(http.MethodGet, "/api/v1/bookings/owner?from=-1", u2, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = c.do(http.MethodGet, "/api/v1/bookings?size=0", u1, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = c.do(http.MethodGet, "/api/v1/bookings", 99999, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("create rejections", func(t *testing.T) {
		later := now.Add(24 * time.Hour)

		rec := c.do(http.MethodPost, "/api/v1/bookings", u1, bookingBody(i1, later, later))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = c.do(http.MethodPost, "/api/v1/bookings", u2, bookingBody(i1, later, later.Add(time.Hour)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		unavailable := c.createItem(u2, "broken bike", false)
		rec = c.do(http.MethodPost, "/api/v1/bookings", u1, bookingBody(unavailable, later, later.Add(time.Hour)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = c.do(http.MethodPost, "/api/v1/bookings", u1, bookingBody(99999, later, later.Add(time.Hour)))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = c.do(http.MethodPost, "/api/v1/bookings", u3, bookingBody(i1, now.Add(90*time.Minute), now.Add(3*time.Hour)))
		assert.Equal(t, http.StatusConflict, rec.Code)

		rec = c.do(http.MethodPost, "/api/v1/bookings", 0, bookingBody(i1, later, later.Add(time.Hour)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("approve by non-owner", func(t *testing.T) {
		later := now.Add(48 * time.Hour)
		rec := c.do(http.MethodPost, "/api/v1/bookings", u3, bookingBody(i1, later, later.Add(time.Hour)))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		id := decode[bookingModels.BookingResponse](t, rec).ID

		rec = c.do(http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d?approved=true", id), u1, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = c.do(http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d?approved=maybe", id), u2, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		// удаление только для администраторов, владелец вещи им не является
		rec = c.do(http.MethodDelete, fmt.Sprintf("/api/v1/bookings/%d", id), u2, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", id), u3, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("start in the past", func(t *testing.T) {
		rec := c.do(http.MethodPost, "/api/v1/bookings", u3, bookingBody(i1, now.Add(-time.Hour), now.Add(time.Hour)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = c.do(http.MethodPost, "/api/v1/bookings", u3, bookingBody(i1, now.Add(-2*time.Hour), now.Add(-time.Hour)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteBooking_AdminOnly(t *testing.T) {
	// первый созданный пользователь получает id 1
	c := client{t: t, router: newTestRouter(t, 1)}

	admin := c.createUser("admin")
	require.Equal(t, int64(1), admin)
	booker := c.createUser("booker")
	owner := c.createUser("owner")
	item := c.createItem(owner, "kayak", true)

	start := time.Now().UTC().Truncate(time.Second).Add(time.Hour)
	rec := c.do(http.MethodPost, "/api/v1/bookings", booker, bookingBody(item, start, start.Add(time.Hour)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	path := fmt.Sprintf("/api/v1/bookings/%d", decode[bookingModels.BookingResponse](t, rec).ID)

	for _, caller := range []int64{booker, owner} {
		rec = c.do(http.MethodDelete, path, caller, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	}

	rec = c.do(http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = c.do(http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, path, booker, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUsersAndItems(t *testing.T) {
	c := client{t: t, router: newTestRouter(t)}

	owner := c.createUser("ann")

	rec := c.do(http.MethodPost, "/api/v1/users", 0, map[string]string{"name": "ann2", "email": "ann@example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = c.do(http.MethodPost, "/api/v1/users", 0, map[string]string{"name": "bad", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d", owner), 0, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ann@example.com", decode[userModels.UserResponse](t, rec).Email)

	rec = c.do(http.MethodPost, "/api/v1/items", owner, map[string]interface{}{"name": "saw", "description": "hand saw"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "available is required")

	second := c.createItem(owner, "saw", true)
	first := c.createItem(owner, "drill", true)
	assert.Less(t, second, first)

	rec = c.do(http.MethodPatch, fmt.Sprintf("/api/v1/items/%d", first), owner, map[string]interface{}{"available": false})
	require.Equal(t, http.StatusOK, rec.Code)
	patched := decode[itemModels.ItemResponse](t, rec)
	assert.False(t, patched.Available)
	assert.Equal(t, "drill", patched.Name)

	other := c.createUser("bob")
	rec = c.do(http.MethodPatch, fmt.Sprintf("/api/v1/items/%d", first), other, map[string]interface{}{"name": "stolen"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/api/v1/items", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]itemModels.ItemResponse](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].ID)
	assert.Equal(t, first, list[1].ID)
}
