package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-todo-nosql/internal/application/todo"
	"github.com/go-todo-nosql/internal/domain"
	"go.uber.org/zap"
)

const msgInvalidBody = "invalid request body"

// TodoHandler handles the todo CRUD endpoints.
type TodoHandler struct {
	svc todo.Service
	log *zap.Logger
}

func NewTodoHandler(svc todo.Service, log *zap.Logger) *TodoHandler {
	return &TodoHandler{svc: svc, log: log}
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Error("list todos", zap.Error(err))
		writeEnvelope(w, errorStatus(err), err.Error(), []domain.Todo{})
		return
	}
	writeEnvelope(w, http.StatusOK, msgSuccess, todos)
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, msgInvalidBody, "")
		return
	}
	created, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.log.Error("add todo", zap.Error(err))
		writeEnvelope(w, errorStatus(err), err.Error(), "")
		return
	}
	writeEnvelope(w, http.StatusOK, msgSuccess, fmt.Sprintf("Todo inserted with ID: %s", created.ID))
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		status := errorStatus(err)
		if status != http.StatusNotFound {
			h.log.Error("get todo", zap.Error(err))
		}
		writeEnvelope[*domain.Todo](w, status, err.Error(), nil)
		return
	}
	writeEnvelope(w, http.StatusOK, msgSuccess, t)
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, msgInvalidBody, "")
		return
	}
	if err := h.svc.Update(r.Context(), req); err != nil {
		status := errorStatus(err)
		if status != http.StatusNotFound {
			h.log.Error("update todo", zap.Error(err))
		}
		writeEnvelope(w, status, err.Error(), "")
		return
	}
	writeEnvelope(w, http.StatusOK, msgSuccess, fmt.Sprintf("Todo updated with ID: %s", req.ID))
}

// Delete is idempotent: removing an unknown id still succeeds.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	todoID := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), todoID); err != nil {
		h.log.Error("delete todo", zap.Error(err))
		writeEnvelope(w, errorStatus(err), err.Error(), "")
		return
	}
	writeEnvelope(w, http.StatusOK, msgSuccess, fmt.Sprintf("Todo deleted with ID: %s", todoID))
}

func (h *TodoHandler) Export(w http.ResponseWriter, r *http.Request) {
	exp, err := h.svc.Export(r.Context())
	if err != nil {
		h.log.Error("export todos", zap.Error(err))
		writeEnvelope[*domain.TodoExport](w, errorStatus(err), err.Error(), nil)
		return
	}
	writeEnvelope(w, http.StatusOK, msgSuccess, exp)
}
