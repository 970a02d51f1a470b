package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"taskFlow/internal/config"
	"taskFlow/internal/handlers"
	"taskFlow/internal/logger"
	"taskFlow/internal/middleware"
	"taskFlow/internal/repository/task/inmemory"
	"taskFlow/internal/repository/task/postgres"
	"taskFlow/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type App struct {
	config    *config.Config
	server    *http.Server
	shutdowns []func() // вызываются в обратном порядке при остановке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	repo, err := a.buildRepository(ctx)
	if err != nil {
		return err
	}

	taskService := service.NewTaskService(repo)
	taskHandler := handlers.NewTaskHandler(&taskService)

	a.server = &http.Server{
		Addr:    a.config.GetServerAddr(),
		Handler: a.buildRouter(&taskHandler),
	}

	return nil
}

// buildRepository выбирает реализацию хранилища по конфигурации
func (a *App) buildRepository(ctx context.Context) (service.TaskRepository, error) {
	switch a.config.Repository.Type {
	case "postgres":
		if err := postgres.Migrate(a.config.Database.URL); err != nil {
			return nil, fmt.Errorf("миграции: %w", err)
		}

		storage, err := postgres.New(ctx, a.config.Database.URL, postgres.PoolConfig{
			MaxConns:    a.config.Database.MaxConnections,
			MinConns:    a.config.Database.MinConnections,
			IdleTimeout: a.config.Database.IdleTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("подключение к postgres: %w", err)
		}
		a.shutdowns = append(a.shutdowns, storage.Close)
		return storage, nil

	case "inmemory":
		return inmemory.NewTaskStorage(), nil

	default:
		return nil, fmt.Errorf("неизвестный тип репозитория: %q", a.config.Repository.Type)
	}
}

func (a *App) buildRouter(h *handlers.TaskHandler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Timeout(a.config.Server.RequestTimeout))
	r.Use(middleware.RateLimit(a.config.Server.RateLimitRPM))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Mount("/", handlers.Routes(h))
	return r
}

// Run запускает сервер и блокируется до отмены контекста
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("Сервер запущен: " + a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("сервер: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Остановка сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", err)
	}

	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	return nil
}
