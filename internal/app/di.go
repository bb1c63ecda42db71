// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	authService "github.com/reybeld94/terminal-api/internal/auth/service"
	clockHTTP "github.com/reybeld94/terminal-api/internal/clock/http"
	clockRepository "github.com/reybeld94/terminal-api/internal/clock/repository"
	clockUsecase "github.com/reybeld94/terminal-api/internal/clock/usecase"
	"github.com/reybeld94/terminal-api/internal/config"
	"github.com/reybeld94/terminal-api/internal/database"
	"github.com/reybeld94/terminal-api/internal/http"
	"github.com/reybeld94/terminal-api/internal/metrics"
	userHTTP "github.com/reybeld94/terminal-api/internal/user/http"
	userRepository "github.com/reybeld94/terminal-api/internal/user/repository"
	userUsecase "github.com/reybeld94/terminal-api/internal/user/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Managers
	sessionManager database.SessionManager

	// Services
	tokenService authService.TokenService

	// Repositories and gateways
	procedureGateway clockUsecase.ProcedureGateway
	collectionRepo   clockUsecase.CollectionRepository
	userRepo         userUsecase.UserRepository

	// Use cases
	clockUseCase clockUsecase.ClockUseCase
	userUseCase  userUsecase.UserUseCase

	// Observability
	metricsProvider *metrics.Provider

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	sessionManagerInit  sync.Once
	tokenServiceInit    sync.Once
	gatewayInit         sync.Once
	collectionRepoInit  sync.Once
	userRepoInit        sync.Once
	clockUseCaseInit    sync.Once
	userUseCaseInit     sync.Once
	metricsProviderInit sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// SessionManager returns the request-scoped database session manager.
func (c *Container) SessionManager() (database.SessionManager, error) {
	c.sessionManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["sessionManager"] = fmt.Errorf("failed to get database for session manager: %w", err)
			return
		}
		c.sessionManager = database.NewSessionManager(db)
	})
	if storedErr, exists := c.initErrors["sessionManager"]; exists {
		return nil, storedErr
	}
	return c.sessionManager, nil
}

// TokenService returns the bearer token service.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService(
			c.config.JWTSecret,
			c.config.JWTIssuer,
			c.config.JWTAudience,
			c.config.TokenTTL,
		)
	})
	return c.tokenService
}

// ProcedureGateway returns the stored procedure gateway.
func (c *Container) ProcedureGateway() (clockUsecase.ProcedureGateway, error) {
	c.gatewayInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["procedureGateway"] = fmt.Errorf("failed to get database for procedure gateway: %w", err)
			return
		}
		c.procedureGateway = clockRepository.NewMySQLProcedureGateway(db, c.Logger())
	})
	if storedErr, exists := c.initErrors["procedureGateway"]; exists {
		return nil, storedErr
	}
	return c.procedureGateway, nil
}

// CollectionRepository returns the work-order collection repository.
func (c *Container) CollectionRepository() (clockUsecase.CollectionRepository, error) {
	c.collectionRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["collectionRepo"] = fmt.Errorf("failed to get database for collection repository: %w", err)
			return
		}
		c.collectionRepo = clockRepository.NewMySQLCollectionRepository(db, c.Logger())
	})
	if storedErr, exists := c.initErrors["collectionRepo"]; exists {
		return nil, storedErr
	}
	return c.collectionRepo, nil
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (userUsecase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["userRepo"] = fmt.Errorf("failed to get database for user repository: %w", err)
			return
		}
		c.userRepo = userRepository.NewMySQLUserRepository(db, c.Logger())
	})
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// ClockUseCase returns the clock use case instance.
func (c *Container) ClockUseCase() (clockUsecase.ClockUseCase, error) {
	c.clockUseCaseInit.Do(func() {
		gateway, err := c.ProcedureGateway()
		if err != nil {
			c.initErrors["clockUseCase"] = fmt.Errorf("failed to get procedure gateway for clock use case: %w", err)
			return
		}

		collections, err := c.CollectionRepository()
		if err != nil {
			c.initErrors["clockUseCase"] = fmt.Errorf("failed to get collection repository for clock use case: %w", err)
			return
		}

		sessions, err := c.SessionManager()
		if err != nil {
			c.initErrors["clockUseCase"] = fmt.Errorf("failed to get session manager for clock use case: %w", err)
			return
		}

		c.clockUseCase = clockUsecase.NewClockUseCase(gateway, collections, sessions)
	})
	if storedErr, exists := c.initErrors["clockUseCase"]; exists {
		return nil, storedErr
	}
	return c.clockUseCase, nil
}

// UserUseCase returns the user use case instance.
func (c *Container) UserUseCase() (userUsecase.UserUseCase, error) {
	c.userUseCaseInit.Do(func() {
		users, err := c.UserRepository()
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to get user repository for user use case: %w", err)
			return
		}

		sessions, err := c.SessionManager()
		if err != nil {
			c.initErrors["userUseCase"] = fmt.Errorf("failed to get session manager for user use case: %w", err)
			return
		}

		c.userUseCase = userUsecase.NewUserUseCase(users, sessions)
	})
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// HTTPServer returns the API HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		DSN:                c.config.DSN(),
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initHTTPServer creates the API HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	clockUC, err := c.ClockUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get clock use case for http server: %w", err)
	}

	userUC, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	opts := http.Options{
		ClockHandler: clockHTTP.NewClockHandler(clockUC, logger),
		UserHandler:  userHTTP.NewUserHandler(userUC, logger),
		TokenService: c.TokenService(),

		CORSEnabled:      c.config.CORSEnabled,
		CORSAllowOrigins: c.config.CORSAllowOrigins,

		RateLimitEnabled:        c.config.RateLimitEnabled,
		RateLimitRequestsPerSec: c.config.RateLimitRequestsPerSec,
		RateLimitBurst:          c.config.RateLimitBurst,
	}
	if provider != nil {
		opts.MeterProvider = provider.MeterProvider()
		opts.MetricsNamespace = c.config.MetricsNamespace
	}

	return http.NewServer(
		db,
		c.config.ServerHost,
		c.config.ServerPort,
		logger,
		opts,
	), nil
}
