package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// PathInt64 целочисленный параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

// QueryInt целочисленный query параметр; def, если параметр не передан
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
