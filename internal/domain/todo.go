package domain

import (
	"time"

	"github.com/go-todo-nosql/internal/pkg/id"
)

// Todo is the single entity persisted by the service.
// ID and Created never change once the record has been inserted.
type Todo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
}

// NewTodo returns a Todo with an empty ID. Created is stored with millisecond precision.
func NewTodo(title, description string, created time.Time) *Todo {
	return &Todo{
		Title:       title,
		Description: description,
		Created:     created.UTC().Truncate(time.Millisecond),
	}
}

// GenerateID assigns a fresh identifier. Call it once, before the first insert.
func (t *Todo) GenerateID() {
	t.ID = id.New()
}

type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UpdateTodoRequest struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TodoEvent is published after a successful write.
type TodoEvent struct {
	Type   string    `json:"type"`
	TodoID string    `json:"todo_id"`
	At     time.Time `json:"at"`
}

const (
	EventTodoCreated = "todo.created"
	EventTodoUpdated = "todo.updated"
	EventTodoDeleted = "todo.deleted"
)

// TodoExport describes a snapshot of the todo list written to object storage.
type TodoExport struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	URL      string `json:"url,omitempty"`
	Count    int    `json:"count"`
}
