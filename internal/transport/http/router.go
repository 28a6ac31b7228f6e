package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-todo-nosql/internal/config"
	"github.com/go-todo-nosql/internal/transport/http/handler"
	appmiddleware "github.com/go-todo-nosql/internal/transport/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const metricsNamespace = "todo_api"

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) *chi.Mux {
	metrics := appmiddleware.NewMetrics(metricsNamespace)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(appmiddleware.Logger(deps.Logger))
	r.Use(metrics.Instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH", "HEAD"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	writeMw := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimitRPS > 0 {
		writeMw = appmiddleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst).Limit
	}

	healthH := handler.NewHealthHandler(cfg.AppVersion)
	todoH := handler.NewTodoHandler(deps.TodoService, deps.Logger)

	r.Get("/", healthH.Hello)
	r.Get("/hello", healthH.Hello)
	r.Get("/health", healthH.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))

	r.Get("/getTodos", todoH.List)
	r.Get("/todo/{id}", todoH.Get)

	r.Group(func(r chi.Router) {
		r.Use(writeMw)

		r.Post("/addTodo", todoH.Create)
		r.Put("/updateTodo", todoH.Update)
		r.Delete("/todo/{id}", todoH.Delete)
		r.Post("/exportTodos", todoH.Export)
	})

	return r
}
