// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/askumaar/stocktrail-be/internal/adapters/db"
	"github.com/askumaar/stocktrail-be/internal/adapters/redis_adapter"
	"github.com/askumaar/stocktrail-be/internal/core/services"
	"github.com/askumaar/stocktrail-be/internal/handlers"
	"github.com/askumaar/stocktrail-be/internal/handlers/middleware"
	"github.com/askumaar/stocktrail-be/internal/pkg/config"
	"github.com/askumaar/stocktrail-be/internal/pkg/logger"
	"github.com/askumaar/stocktrail-be/internal/workers"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting stocktrail inventory tracker",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	if err := runMigrations(ctx, cfg, slogger); err != nil {
		slogger.Error("failed to run migrations", slog.String("error", err.Error()))
		if cfg.IsProduction() {
			os.Exit(1)
		}
	}

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
		)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received",
			slog.String("signal", sig.String()),
		)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database         *db.Database
	redisClient      *redis.Client
	asynqClient      *asynq.Client
	asynqInspector   *asynq.Inspector
	itemHandler      *handlers.ItemHandler
	movementHandler  *handlers.MovementHandler
	stockHandler     *handlers.StockHandler
	eventHandler     *handlers.EventHandler
	dashboardHandler *handlers.DashboardHandler
	exportHandler    *handlers.ExportHandler
	healthHandler    *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.database != nil {
		d.database.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	logger.Info("connecting to Redis",
		slog.String("host", cfg.Redis.Host),
		slog.String("port", cfg.Redis.Port),
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	deps.redisClient = redisClient

	cache := redis_adapter.NewCache(redisClient, cfg.Redis.TTL, logger)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
	deps.asynqClient = asynq.NewClient(asynqRedisOpt)
	deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)

	// Repositories
	itemRepo := db.NewItemRepository(database, logger)
	movementRepo := db.NewMovementRepository(database, logger)
	stockRepo := db.NewStockRepository(database, logger)
	eventRepo := db.NewEventRepository(database, logger)

	// Services
	notifier := workers.NewTaskEnqueuer(deps.asynqClient, logger)
	itemService := services.NewItemService(itemRepo, eventRepo, logger)
	movementService := services.NewMovementService(itemRepo, movementRepo, notifier, logger)
	stockService := services.NewStockService(itemRepo, stockRepo, logger)
	eventService := services.NewEventService(eventRepo, logger)

	// Handlers
	deps.itemHandler = handlers.NewItemHandler(itemService, logger)
	deps.movementHandler = handlers.NewMovementHandler(movementService, logger)
	deps.stockHandler = handlers.NewStockHandler(stockService, logger)
	deps.eventHandler = handlers.NewEventHandler(eventService, logger)
	deps.dashboardHandler = handlers.NewDashboardHandler(database, cache, logger)
	deps.exportHandler = handlers.NewExportHandler(database, logger)
	deps.healthHandler = handlers.NewHealthHandler(database, redisClient, deps.asynqInspector, cfg, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	registerRoutes(mux, deps)

	// Apply middleware in reverse order (innermost first)
	var handler http.Handler = mux
	handler = middleware.Authenticate(cfg.Security.JWTSecret)(handler)

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}
	if cfg.Security.SecureHeaders {
		handler = middleware.SecureHeaders(handler)
	}

	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Logger(logger)(handler)
	handler = middleware.RequestID(handler)

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies) {
	apiV1 := "/api/v1"

	// Health and readiness
	mux.HandleFunc("GET /health", deps.healthHandler.Health)
	mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)
	mux.HandleFunc("GET "+apiV1+"/health", deps.healthHandler.Health)

	authed := func(h http.HandlerFunc) http.Handler { return middleware.RequireAuth(h) }
	admin := func(h http.HandlerFunc) http.Handler { return middleware.RequireAdmin(h) }

	// Items. Reads are public, writes need a token and create/update/delete
	// are reserved for admins.
	mux.Handle("POST "+apiV1+"/items", admin(deps.itemHandler.Create))
	mux.Handle("POST "+apiV1+"/items/quick-add", authed(deps.itemHandler.QuickAdd))
	mux.HandleFunc("GET "+apiV1+"/items", deps.itemHandler.List)
	mux.HandleFunc("GET "+apiV1+"/items/check-name", deps.itemHandler.CheckName)
	mux.HandleFunc("GET "+apiV1+"/items/number/{itemNumber}", deps.itemHandler.GetByNumber)
	mux.HandleFunc("GET "+apiV1+"/items/{id}", deps.itemHandler.Get)
	mux.Handle("PUT "+apiV1+"/items/{id}", admin(deps.itemHandler.Update))
	mux.Handle("PUT "+apiV1+"/items/{id}/status", authed(deps.itemHandler.UpdateStatus))
	mux.HandleFunc("GET "+apiV1+"/items/{id}/status-history", deps.itemHandler.StatusHistory)
	mux.Handle("DELETE "+apiV1+"/items/{id}", admin(deps.itemHandler.Delete))

	// Movements
	mux.Handle("POST "+apiV1+"/movements", authed(deps.movementHandler.Record))
	mux.HandleFunc("GET "+apiV1+"/movements/recent", deps.movementHandler.Recent)
	mux.Handle("DELETE "+apiV1+"/movements/{id}", admin(deps.movementHandler.Delete))

	// Stock ledger
	mux.Handle("POST "+apiV1+"/stock-history", authed(deps.stockHandler.Change))
	mux.Handle("GET "+apiV1+"/stock-history", authed(deps.stockHandler.History))
	mux.Handle("GET "+apiV1+"/stock-history/{itemId}", authed(deps.stockHandler.ItemHistory))

	// Events
	mux.Handle("POST "+apiV1+"/events", authed(deps.eventHandler.Create))
	mux.Handle("POST "+apiV1+"/events/scheduled", authed(deps.eventHandler.CreateScheduled))
	mux.HandleFunc("GET "+apiV1+"/events", deps.eventHandler.List)
	mux.HandleFunc("GET "+apiV1+"/events/scheduled", deps.eventHandler.Scheduled)
	mux.HandleFunc("GET "+apiV1+"/events/upcoming", deps.eventHandler.Upcoming)
	mux.HandleFunc("GET "+apiV1+"/events/{id}", deps.eventHandler.Get)
	mux.Handle("PATCH "+apiV1+"/events/{id}/status", authed(deps.eventHandler.UpdateStatus))

	// Dashboard and export
	mux.HandleFunc("GET "+apiV1+"/dashboard", deps.dashboardHandler.GetDashboard)
	mux.Handle("GET "+apiV1+"/export/excel", admin(deps.exportHandler.ExportExcel))
	mux.Handle("GET "+apiV1+"/export/items.xlsx", admin(deps.exportHandler.ExportItems))
	mux.Handle("GET "+apiV1+"/export/movements.xlsx", admin(deps.exportHandler.ExportMovements))
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("running database migrations")

	migrationConfig := &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}

	return db.RunMigrationsWithRetry(ctx, migrationConfig, logger, 3)
}
