package handler

import (
	"log/slog"
	"net/http"

	"github.com/company-directory-api/internal/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIPrefix - префикс версии API
const APIPrefix = "/api/v1"

// Handlers - обработчики ресурсов API
type Handlers struct {
	Auth        *AuthHandler
	Companies   *CompanyHandler
	Departments *DepartmentHandler
	Employees   *EmployeeHandler
	Users       *UserHandler
	Health      *HealthHandler
}

// Router настраивает маршруты API
type Router struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	handlers     Handlers
	authenticate func(http.Handler) http.Handler
	metrics      *middleware.Metrics
	gatherer     prometheus.Gatherer
}

// NewRouter создаёт новый роутер. authenticate защищает все маршруты API, кроме получения токена.
func NewRouter(
	handlers Handlers,
	authenticate func(http.Handler) http.Handler,
	metrics *middleware.Metrics,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) *Router {
	return &Router{
		mux:          http.NewServeMux(),
		logger:       logger,
		handlers:     handlers,
		authenticate: authenticate,
		metrics:      metrics,
		gatherer:     gatherer,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	h := r.handlers

	r.mux.HandleFunc("POST "+APIPrefix+"/auth/token", h.Auth.Login)

	r.protect(http.MethodGet, "/companies", h.Companies.List)
	r.protect(http.MethodPost, "/companies", h.Companies.Create)
	r.protect(http.MethodGet, "/companies/{id}", h.Companies.GetByID)
	r.protect(http.MethodPut, "/companies/{id}", h.Companies.Update)
	r.protect(http.MethodDelete, "/companies/{id}", h.Companies.Delete)

	r.protect(http.MethodGet, "/departments", h.Departments.List)
	r.protect(http.MethodPost, "/departments", h.Departments.Create)
	r.protect(http.MethodGet, "/departments/{id}", h.Departments.GetByID)
	r.protect(http.MethodPut, "/departments/{id}", h.Departments.Update)
	r.protect(http.MethodDelete, "/departments/{id}", h.Departments.Delete)

	r.protect(http.MethodGet, "/employees", h.Employees.List)
	r.protect(http.MethodPost, "/employees", h.Employees.Create)
	r.protect(http.MethodGet, "/employees/search", h.Employees.Search)
	r.protect(http.MethodGet, "/employees/{id}", h.Employees.GetByID)
	r.protect(http.MethodPut, "/employees/{id}", h.Employees.Update)
	r.protect(http.MethodDelete, "/employees/{id}", h.Employees.Delete)
	r.protect(http.MethodPost, "/employees/{id}/user", h.Users.Create)

	r.protect(http.MethodGet, "/users", h.Users.List)
	r.protect(http.MethodGet, "/users/{id}", h.Users.GetByID)
	r.protect(http.MethodPut, "/users/{id}", h.Users.Update)
	r.protect(http.MethodDelete, "/users/{id}", h.Users.Delete)

	// Health check и метрики
	r.mux.HandleFunc("GET /health", h.Health.Check)
	r.mux.Handle("GET /metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}))

	// Применяем middleware, первый в списке - внешний
	return middleware.Chain(r.mux,
		middleware.Recoverer(r.logger),
		middleware.RequestID,
		middleware.Logger(r.logger),
		r.metrics.Handler,
		middleware.ContentType,
	)
}

// protect регистрирует маршрут API за проверкой токена
func (r *Router) protect(method, path string, fn http.HandlerFunc) {
	r.mux.Handle(method+" "+APIPrefix+path, r.authenticate(fn))
}
