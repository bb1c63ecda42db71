// Package http provides the API server, router, and request middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	authhttp "github.com/reybeld94/terminal-api/internal/auth/http"
	authservice "github.com/reybeld94/terminal-api/internal/auth/service"
	clockhttp "github.com/reybeld94/terminal-api/internal/clock/http"
	"github.com/reybeld94/terminal-api/internal/metrics"
	userhttp "github.com/reybeld94/terminal-api/internal/user/http"
)

// Options carries the handlers and policies the router is assembled from.
// MeterProvider is optional; when nil no HTTP metrics are recorded.
type Options struct {
	ClockHandler *clockhttp.ClockHandler
	UserHandler  *userhttp.UserHandler
	TokenService authservice.TokenService

	MeterProvider    metric.MeterProvider
	MetricsNamespace string

	CORSEnabled      bool
	CORSAllowOrigins string

	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates the API server with its router fully assembled.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
	opts Options,
) *Server {
	s := &Server{
		db:     db,
		logger: logger,
	}
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      s.createRouter(opts),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// createRouter builds the Gin engine with middleware and routes.
func (s *Server) createRouter(opts Options) *gin.Engine {
	router := gin.New()

	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(RequestLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(opts.CORSEnabled, opts.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if opts.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(opts.MeterProvider, opts.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	if opts.TokenService != nil {
		protected := router.Group("", authhttp.AuthenticationMiddleware(opts.TokenService, s.logger))
		if opts.RateLimitEnabled {
			protected.Use(authhttp.RateLimitMiddleware(
				opts.RateLimitRequestsPerSec,
				opts.RateLimitBurst,
				s.logger,
			))
		}

		if opts.ClockHandler != nil {
			protected.POST("/clock-in", opts.ClockHandler.ClockInHandler)
			protected.POST("/clock-out", opts.ClockHandler.ClockOutHandler)
		}
		if opts.UserHandler != nil {
			protected.GET("/users/:employeeId", opts.UserHandler.StatusHandler)
		}
	}

	return router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can reach its dependencies.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
