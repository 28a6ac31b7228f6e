package todo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/go-todo-nosql/internal/domain"
	"github.com/go-todo-nosql/internal/pkg/id"
	"github.com/go-todo-nosql/internal/pkg/validate"
	"go.uber.org/zap"
)

const exportURLTTL = 15 * time.Minute

type Service interface {
	List(ctx context.Context) ([]domain.Todo, error)
	Get(ctx context.Context, todoID string) (*domain.Todo, error)
	Create(ctx context.Context, req domain.CreateTodoRequest) (*domain.Todo, error)
	Update(ctx context.Context, req domain.UpdateTodoRequest) error
	Delete(ctx context.Context, todoID string) error
	Export(ctx context.Context) (*domain.TodoExport, error)
}

type todoStore interface {
	List(ctx context.Context) ([]domain.Todo, error)
	GetByID(ctx context.Context, todoID string) (*domain.Todo, error)
	Insert(ctx context.Context, t *domain.Todo) error
	Update(ctx context.Context, t *domain.Todo) error
	Delete(ctx context.Context, todoID string) error
}

type eventPublisher interface {
	Publish(ctx context.Context, ev domain.TodoEvent) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ServiceDeps bundles the collaborators of the todo service.
// Events and Exports are optional.
type ServiceDeps struct {
	Repo    todoStore
	Events  eventPublisher
	Exports objectStore
	Logger  *zap.Logger
	Now     func() time.Time
}

type service struct {
	repo    todoStore
	events  eventPublisher
	exports objectStore
	log     *zap.Logger
	now     func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		repo:    deps.Repo,
		events:  deps.Events,
		exports: deps.Exports,
		log:     deps.Logger,
		now:     deps.Now,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) List(ctx context.Context) ([]domain.Todo, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, todoID string) (*domain.Todo, error) {
	t, err := s.repo.GetByID(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("todo %s: %w", todoID, domain.ErrNotFound)
	}
	return t, nil
}

func (s *service) Create(ctx context.Context, req domain.CreateTodoRequest) (*domain.Todo, error) {
	t := domain.NewTodo(req.Title, req.Description, s.now())
	t.GenerateID()
	if err := s.repo.Insert(ctx, t); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.EventTodoCreated, t.ID)
	return t, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateTodoRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBadRequest, err)
	}
	t := &domain.Todo{ID: req.ID, Title: req.Title, Description: req.Description}
	if err := s.repo.Update(ctx, t); err != nil {
		return err
	}
	s.publish(ctx, domain.EventTodoUpdated, t.ID)
	return nil
}

func (s *service) Delete(ctx context.Context, todoID string) error {
	if err := s.repo.Delete(ctx, todoID); err != nil {
		return err
	}
	s.publish(ctx, domain.EventTodoDeleted, todoID)
	return nil
}

func (s *service) Export(ctx context.Context) (*domain.TodoExport, error) {
	if s.exports == nil {
		return nil, fmt.Errorf("%w: export storage is not configured", domain.ErrBadRequest)
	}
	todos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(todos)
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}

	key := fmt.Sprintf("exports/%s.json", id.New())
	loc, err := s.exports.Upload(ctx, key, bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, err
	}
	exp := &domain.TodoExport{Key: key, Location: loc, Count: len(todos)}

	// The export already exists at this point; a missing link is not fatal.
	if url, err := s.exports.PresignedURL(ctx, key, exportURLTTL); err != nil {
		s.log.Warn("could not presign export", zap.String("key", key), zap.Error(err))
	} else {
		exp.URL = url
	}
	return exp, nil
}

// publish never fails the request that triggered it.
func (s *service) publish(ctx context.Context, eventType, todoID string) {
	if s.events == nil {
		return
	}
	ev := domain.TodoEvent{Type: eventType, TodoID: todoID, At: s.now().UTC()}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("could not publish todo event",
			zap.String("type", eventType),
			zap.String("todo_id", todoID),
			zap.Error(err),
		)
	}
}
