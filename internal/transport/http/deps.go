package http

import (
	"github.com/go-todo-nosql/internal/application/todo"
	"go.uber.org/zap"
)

// Deps holds the long-lived dependencies shared by every request.
// They are built once at startup.
type Deps struct {
	TodoService todo.Service
	Logger      *zap.Logger
}
