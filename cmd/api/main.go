package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/company-directory-api/internal/auth"
	"github.com/company-directory-api/internal/config"
	"github.com/company-directory-api/internal/converter"
	"github.com/company-directory-api/internal/database"
	"github.com/company-directory-api/internal/handler"
	"github.com/company-directory-api/internal/middleware"
	"github.com/company-directory-api/internal/repository"
	"github.com/company-directory-api/internal/service"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	// Инициализация логгера
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Подключение к БД
	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", slog.Any("error", err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Запуск миграций
	if err := database.Migrate(sqlDB, cfg.Database.Driver, logger); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.SeedData {
		if err := database.Seed(context.Background(), db, logger); err != nil {
			logger.Error("failed to seed database", slog.Any("error", err))
			os.Exit(1)
		}
	}

	// Метрики
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		logger.Error("failed to register metrics", slog.Any("error", err))
		os.Exit(1)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      newHandler(cfg, db, metrics, reg, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
		close(done)
	}()

	logger.Info("server is starting",
		slog.String("port", cfg.Server.Port),
		slog.String("driver", cfg.Database.Driver),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		os.Exit(1)
	}

	<-done
	logger.Info("server stopped")
}

// newHandler собирает сервисы, обработчики и роутер
func newHandler(cfg *config.Config, db *gorm.DB, metrics *middleware.Metrics, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	newFactory := func() *repository.Factory {
		return repository.NewFactory(db, repository.WithLogger(logger))
	}
	conv := converter.New(time.Now)

	companies := service.NewCompanyService(newFactory)
	departments := service.NewDepartmentService(newFactory)
	employees := service.NewEmployeeService(newFactory)
	users := service.NewUserService(newFactory)
	login := service.NewAuthService(newFactory, auth.NewIssuer(cfg.JWT), logger)

	ping := func(ctx context.Context) error { return database.Ping(ctx, db) }

	router := handler.NewRouter(handler.Handlers{
		Auth:        handler.NewAuthHandler(login, conv, logger),
		Companies:   handler.NewCompanyHandler(companies, conv, logger),
		Departments: handler.NewDepartmentHandler(departments, conv, logger),
		Employees:   handler.NewEmployeeHandler(employees, conv, logger),
		Users:       handler.NewUserHandler(users, conv, logger),
		Health:      handler.NewHealthHandler(ping, logger),
	},
		middleware.Authenticate(auth.NewValidator(logger), auth.ParamsFromConfig(cfg.JWT)),
		metrics, gatherer, logger,
	)
	return router.Setup()
}
