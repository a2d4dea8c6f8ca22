package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/keelhaven/clientreg/internal/registry/events"
	httpapi "github.com/keelhaven/clientreg/internal/registry/http"
	"github.com/keelhaven/clientreg/internal/registry/service"
	"github.com/keelhaven/clientreg/internal/registry/store"
	"github.com/keelhaven/clientreg/internal/registry/store/drivers/postgres"
	"github.com/keelhaven/clientreg/internal/registry/store/drivers/sqlite"
	"github.com/keelhaven/clientreg/pkg/authx"
	"github.com/keelhaven/clientreg/pkg/cryptox"
	"github.com/keelhaven/clientreg/pkg/httpx"
	"github.com/keelhaven/clientreg/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the client registry with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	redis  *redis.Client    // nil unless REGISTRY_REDIS_URL is set
	events events.Publisher // nil unless REGISTRY_AMQP_URL is set

	// Services
	clientService *service.ClientService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "client-registry",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for secret hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initRedis(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initEvents()

	verifier, err := app.buildVerifier()
	if err != nil {
		app.closeDependencies()
		return nil, err
	}

	app.initServices()
	app.initHTTP(verifier)

	if err := app.seedClient(context.Background()); err != nil {
		app.closeDependencies()
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("client registry starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down client registry...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.events != nil {
		if err := app.events.Close(); err != nil {
			app.logger.Error("error closing event publisher", "error", err)
		}
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("client registry stopped")
	return nil
}

// initDatabase initializes the configured store driver and applies migrations
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.NewStore(app.cfg.DatabaseURL)
	default:
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initRedis connects the optional Redis client backing distributed rate
// limits. An unreachable server downgrades to in-process limiting rather
// than blocking startup.
func (app *Application) initRedis() error {
	if app.cfg.RedisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("invalid REGISTRY_REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		app.logger.Warn("redis unreachable, rate limits stay in-process", "error", err)
		_ = rdb.Close()
		return nil
	}

	app.redis = rdb
	app.logger.Info("redis connected, rate limits enforced across replicas")
	return nil
}

// initEvents connects the optional AMQP lifecycle publisher. Events are
// best-effort, so an unreachable broker disables them rather than blocking
// startup.
func (app *Application) initEvents() {
	if app.cfg.AMQPURL == "" {
		return
	}

	pub, err := events.NewAMQPPublisher(app.cfg.AMQPURL, app.cfg.AMQPExchange)
	if err != nil {
		app.logger.Warn("amqp unreachable, lifecycle events disabled", "error", err)
		return
	}

	app.events = pub
	app.logger.Info("lifecycle events enabled", "exchange", app.cfg.AMQPExchange)
}

// buildVerifier constructs the bearer-token verifier from config. A nil
// verifier with nil error means no auth settings were provided and the
// router serves unauthenticated.
func (app *Application) buildVerifier() (authx.Verifier, error) {
	switch {
	case app.cfg.AuthHMACSecret != "":
		return authx.NewVerifier(authx.Config{
			HMACSecret: app.cfg.AuthHMACSecret,
			Issuer:     app.cfg.AuthIssuer,
		})
	case app.cfg.AuthPublicKeyFile != "":
		pem, err := os.ReadFile(app.cfg.AuthPublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("read auth public key: %w", err)
		}
		return authx.NewVerifier(authx.Config{
			PublicKeyPEM: pem,
			Issuer:       app.cfg.AuthIssuer,
		})
	default:
		return nil, nil
	}
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.clientService = &service.ClientService{
		Store:  app.db,
		Events: app.events,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP(verifier authx.Verifier) {
	var limiter httpx.WindowLimiter
	if app.redis != nil {
		limiter = httpx.NewRedisWindowLimiter(app.redis)
	}

	router := httpapi.NewRouter(
		verifier,
		limiter,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.ClientService = app.clientService
	router.EnableDocs = app.cfg.EnableDocs
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// seedClient ensures the configured seed registration exists so a fresh
// deployment has a working client.
func (app *Application) seedClient(ctx context.Context) error {
	if app.cfg.SeedClientID == "" {
		return nil
	}

	name := app.cfg.SeedClientName
	if name == "" {
		name = app.cfg.SeedClientID
	}

	return app.clientService.EnsureSeedClient(ctx, service.CreateClientInput{
		ID:            app.cfg.SeedClientID,
		Name:          name,
		Secret:        app.cfg.SeedClientSecret,
		AllowedScopes: []string{"openid", "profile", "email"},
	})
}

func (app *Application) closeDependencies() {
	if app.events != nil {
		_ = app.events.Close()
	}
	if app.redis != nil {
		_ = app.redis.Close()
	}
	_ = app.db.Close()
}
