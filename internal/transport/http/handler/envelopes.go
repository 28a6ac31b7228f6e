package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-todo-nosql/internal/domain"
)

// Envelope is the uniform response wrapper. Code always equals the HTTP status.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

const msgSuccess = "success"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeEnvelope[T any](w http.ResponseWriter, status int, msg string, data T) {
	writeJSON(w, status, Envelope[T]{Code: status, Message: msg, Data: data})
}

// errorStatus maps domain errors to envelope codes. Store and unclassified
// failures are reported as client errors.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateID):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
