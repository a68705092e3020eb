package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"SeoContentEngine/internal/api"
	"SeoContentEngine/internal/config"
	"SeoContentEngine/internal/generator"
	"SeoContentEngine/internal/infrastructure/llm"
	"SeoContentEngine/internal/infrastructure/scheduler"
	"SeoContentEngine/internal/infrastructure/storage"
	"SeoContentEngine/internal/infrastructure/telegram"
	"SeoContentEngine/internal/logging"
	"SeoContentEngine/internal/ports"
	"SeoContentEngine/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	server    *http.Server
	scheduler *usecase.DigestScheduler
	db        *sql.DB
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	repository, db, err := buildRepository(cfg, baseLogger)
	if err != nil {
		return nil, err
	}

	backend, err := buildGenerator(cfg)
	if err != nil {
		return nil, err
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" {
		notifier = telegram.NewNotifier(
			cfg.Notifications.Telegram.BotToken,
			cfg.Notifications.Telegram.ChatID,
		)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Generator:      backend,
		Repository:     repository,
		MaxRetries:     cfg.Batch.MaxRetries,
		AttemptTimeout: cfg.Batch.AttemptTimeout(),
		Logger:         logging.Component(baseLogger, "pipeline"),
	})

	orchestrator := usecase.NewOrchestrator(usecase.OrchestratorDeps{
		Pipeline: pipeline,
		Store:    usecase.NewJobStore(),
		Workers:  cfg.Batch.Workers,
		Notifier: notifier,
		Logger:   logging.Component(baseLogger, "orchestrator"),
	})

	handler := api.NewHandler(orchestrator, pipeline, repository,
		logging.Component(baseLogger, "api"))
	router := api.NewRouter(handler, logging.Component(baseLogger, "http"))

	var digestScheduler *usecase.DigestScheduler
	if notifier != nil {
		digest := usecase.NewAnalyticsDigest(repository, notifier,
			cfg.Scheduler.WindowDays, logging.Component(baseLogger, "digest"))
		digestScheduler = usecase.NewDigestScheduler(
			scheduler.NewDailyScheduler(cfg.Scheduler.Location()), digest)
	}

	return &Application{
		cfg:    cfg,
		logger: baseLogger,
		server: &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		scheduler: digestScheduler,
		db:        db,
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	if a.db != nil {
		defer a.db.Close()
	}

	if a.scheduler != nil {
		if err := a.scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", a.cfg.Server.Addr)
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.scheduler != nil {
		_ = a.scheduler.Stop(shutdownCtx)
	}
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	return nil
}

func buildRepository(cfg config.Config, logger *slog.Logger) (ports.ContentRepository, *sql.DB, error) {
	if cfg.Database.DSN == "" {
		logger.Info("no database configured, using in-memory repository")
		return storage.NewMemoryRepository(), nil, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return storage.NewPostgresRepository(db), db, nil
}

func buildGenerator(cfg config.Config) (generator.Backend, error) {
	registry := generator.NewRegistry()
	registry.Register(llm.NewOpenAIBackend(cfg.Generator.OpenAI))
	registry.Register(llm.NewInferenceBackend(cfg.Generator.Inference))
	registry.Register(llm.NewStubBackend())

	backend, err := registry.Resolve(cfg.Generator.Backend)
	if err != nil {
		return nil, fmt.Errorf("resolve generator backend: %w", err)
	}
	return backend, nil
}
