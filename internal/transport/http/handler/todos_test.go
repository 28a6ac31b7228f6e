package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-todo-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- mock ---

type mockTodoSvc struct{ mock.Mock }

func (m *mockTodoSvc) List(ctx context.Context) ([]domain.Todo, error) {
	args := m.Called(ctx)
	todos, _ := args.Get(0).([]domain.Todo)
	return todos, args.Error(1)
}

func (m *mockTodoSvc) Get(ctx context.Context, todoID string) (*domain.Todo, error) {
	args := m.Called(ctx, todoID)
	if t, _ := args.Get(0).(*domain.Todo); t != nil {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTodoSvc) Create(ctx context.Context, req domain.CreateTodoRequest) (*domain.Todo, error) {
	args := m.Called(ctx, req)
	if t, _ := args.Get(0).(*domain.Todo); t != nil {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTodoSvc) Update(ctx context.Context, req domain.UpdateTodoRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockTodoSvc) Delete(ctx context.Context, todoID string) error {
	return m.Called(ctx, todoID).Error(0)
}

func (m *mockTodoSvc) Export(ctx context.Context) (*domain.TodoExport, error) {
	args := m.Called(ctx)
	if e, _ := args.Get(0).(*domain.TodoExport); e != nil {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- helpers ---

func newHandler(svc *mockTodoSvc) *TodoHandler { return NewTodoHandler(svc, zap.NewNop()) }

// withChiID injects a chi URL param "id" into the request context.
func withChiID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) Envelope[T] {
	t.Helper()
	var env Envelope[T]
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

var storeErr = &domain.StoreError{Op: "scan todos", Err: errors.New("ResourceNotFoundException: table missing")}

// --- List ---

func TestList_Success(t *testing.T) {
	svc := &mockTodoSvc{}
	created := time.Date(2024, 2, 19, 19, 20, 54, 702_000_000, time.UTC)
	svc.On("List", mock.Anything).Return([]domain.Todo{{ID: "a", Title: "T", Description: "D", Created: created}}, nil)

	rr := httptest.NewRecorder()
	newHandler(svc).List(rr, httptest.NewRequest(http.MethodGet, "/getTodos", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	env := decode[[]domain.Todo](t, rr)
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, "success", env.Message)
	require.Len(t, env.Data, 1)
	assert.Equal(t, created, env.Data[0].Created)
}

func TestList_StoreFailure_EmptyListAnd400(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("List", mock.Anything).Return(nil, storeErr)

	rr := httptest.NewRecorder()
	newHandler(svc).List(rr, httptest.NewRequest(http.MethodGet, "/getTodos", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"code":400,"message":"scan todos: ResourceNotFoundException: table missing","data":[]}`, rr.Body.String())
}

func TestList_MalformedRecord_400(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("List", mock.Anything).Return(nil, domain.ErrMalformedRecord)

	rr := httptest.NewRecorder()
	newHandler(svc).List(rr, httptest.NewRequest(http.MethodGet, "/getTodos", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- Create ---

func TestCreate_InvalidBody(t *testing.T) {
	svc := &mockTodoSvc{}
	rr := httptest.NewRecorder()
	newHandler(svc).Create(rr, httptest.NewRequest(http.MethodPost, "/addTodo", bytes.NewBufferString("not-json")))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid request body", decode[string](t, rr).Message)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_HappyPath(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Create", mock.Anything, domain.CreateTodoRequest{Title: "T", Description: "D"}).
		Return(&domain.Todo{ID: "01HX", Title: "T", Description: "D"}, nil)

	rr := httptest.NewRecorder()
	newHandler(svc).Create(rr, httptest.NewRequest(http.MethodPost, "/addTodo", bytes.NewBufferString(`{"title":"T","description":"D"}`)))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"code":200,"message":"success","data":"Todo inserted with ID: 01HX"}`, rr.Body.String())
	svc.AssertExpectations(t)
}

func TestCreate_StoreFailure(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, storeErr)

	rr := httptest.NewRecorder()
	newHandler(svc).Create(rr, httptest.NewRequest(http.MethodPost, "/addTodo", bytes.NewBufferString(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	env := decode[string](t, rr)
	assert.Equal(t, 400, env.Code)
	assert.Empty(t, env.Data)
}

// --- Get ---

func TestGet_Found(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Get", mock.Anything, "01HX").Return(&domain.Todo{ID: "01HX", Title: "T"}, nil)

	rr := httptest.NewRecorder()
	newHandler(svc).Get(rr, withChiID(httptest.NewRequest(http.MethodGet, "/todo/01HX", nil), "01HX"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "T", decode[domain.Todo](t, rr).Data.Title)
}

func TestGet_NotFound(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Get", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

	rr := httptest.NewRecorder()
	newHandler(svc).Get(rr, withChiID(httptest.NewRequest(http.MethodGet, "/todo/nope", nil), "nope"))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	env := decode[*domain.Todo](t, rr)
	assert.Equal(t, 404, env.Code)
	assert.Nil(t, env.Data)
}

func TestGet_DuplicateID_500(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Get", mock.Anything, "dup").Return(nil, domain.ErrDuplicateID)

	rr := httptest.NewRecorder()
	newHandler(svc).Get(rr, withChiID(httptest.NewRequest(http.MethodGet, "/todo/dup", nil), "dup"))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

// --- Update ---

func TestUpdate_HappyPath(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Update", mock.Anything, domain.UpdateTodoRequest{ID: "01HX", Title: "T2", Description: "D2"}).Return(nil)

	rr := httptest.NewRecorder()
	body := `{"id":"01HX","title":"T2","description":"D2"}`
	newHandler(svc).Update(rr, httptest.NewRequest(http.MethodPut, "/updateTodo", bytes.NewBufferString(body)))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Todo updated with ID: 01HX", decode[string](t, rr).Data)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Update", mock.Anything, mock.Anything).Return(domain.ErrNotFound)

	rr := httptest.NewRecorder()
	newHandler(svc).Update(rr, httptest.NewRequest(http.MethodPut, "/updateTodo", bytes.NewBufferString(`{"id":"ghost"}`)))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdate_BadRequest(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Update", mock.Anything, mock.Anything).Return(domain.ErrBadRequest)

	rr := httptest.NewRecorder()
	newHandler(svc).Update(rr, httptest.NewRequest(http.MethodPut, "/updateTodo", bytes.NewBufferString(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- Delete ---

func TestDelete_Idempotent(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Delete", mock.Anything, "01HX").Return(nil).Twice()
	h := newHandler(svc)

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.Delete(rr, withChiID(httptest.NewRequest(http.MethodDelete, "/todo/01HX", nil), "01HX"))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Todo deleted with ID: 01HX", decode[string](t, rr).Data)
	}
	svc.AssertExpectations(t)
}

// --- Export ---

func TestExport_NotConfigured(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Export", mock.Anything).Return(nil, domain.ErrBadRequest)

	rr := httptest.NewRecorder()
	newHandler(svc).Export(rr, httptest.NewRequest(http.MethodPost, "/exportTodos", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestExport_HappyPath(t *testing.T) {
	svc := &mockTodoSvc{}
	svc.On("Export", mock.Anything).Return(&domain.TodoExport{Key: "exports/1.json", Count: 3}, nil)

	rr := httptest.NewRecorder()
	newHandler(svc).Export(rr, httptest.NewRequest(http.MethodPost, "/exportTodos", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 3, decode[domain.TodoExport](t, rr).Data.Count)
}

// --- Health ---

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHealthHandler("1.2.3").Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"code":200,"message":"success","data":{"status":"ok","version":"1.2.3"}}`, rr.Body.String())
}

func TestHello(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHealthHandler("").Hello(rr, httptest.NewRequest(http.MethodGet, "/hello", nil))
	assert.Equal(t, helloMessage, decode[map[string]string](t, rr).Data["message"])
}
