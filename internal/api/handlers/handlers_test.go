package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNotFound(rec, "не найдено")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: 404, Message: "не найдено"}, body)
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"drill"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "drill", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(r, &dst), ErrEmptyBody)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"drill","extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestValidate(t *testing.T) {
	type user struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}

	assert.NoError(t, Validate(user{Name: "Ann", Email: "ann@example.com"}))

	err := Validate(user{Email: "nope"})
	require.Error(t, err)
	msg := ValidationMessage(err)
	assert.Contains(t, msg, "поле Name обязательно")
	assert.Contains(t, msg, "поле Email должно быть email")
}

func TestParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/bookings/7?from=20&size=x", nil)
	r = mux.SetURLVars(r, map[string]string{"bookingId": "7"})

	id, err := PathInt64(r, "bookingId")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	from, err := QueryInt(r, "from", 0)
	require.NoError(t, err)
	assert.Equal(t, 20, from)

	_, err = QueryInt(r, "size", 10)
	assert.Error(t, err)

	state, err := QueryInt(r, "missing", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, state)
}
