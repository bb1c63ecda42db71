package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authservice "github.com/reybeld94/terminal-api/internal/auth/service"
	clockhttp "github.com/reybeld94/terminal-api/internal/clock/http"
	"github.com/reybeld94/terminal-api/internal/httputil"
	userhttp "github.com/reybeld94/terminal-api/internal/user/http"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// createTestServer creates a test server with a discarding logger and no
// business routes.
func createTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(nil, "localhost", 8080, logger, Options{})
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler_NotReady_NilDB(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "not_ready", response["status"])

	components, ok := response["components"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "error", components["database"])
}

func TestRequestIDHeader(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.GetHandler().ServeHTTP(w, req)

	rid := w.Header().Get("X-Request-Id")
	require.NotEmpty(t, rid)
	_, err := uuid.Parse(rid)
	assert.NoError(t, err)
}

func TestRequestLoggerMiddleware(t *testing.T) {
	t.Run("CompletedRecord", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		router := gin.New()
		router.Use(requestid.New(requestid.WithGenerator(func() string {
			return uuid.Must(uuid.NewV7()).String()
		})))
		router.Use(RequestLoggerMiddleware(logger))
		router.POST("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "test"})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/test?source=terminal", strings.NewReader(`{"userId": 7}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		logs := buf.String()
		assert.Contains(t, logs, "request.received")
		assert.Contains(t, logs, "request.completed")
		assert.Contains(t, logs, `"userId": 7`)
		assert.Contains(t, logs, "source=terminal")
		assert.Contains(t, logs, w.Header().Get("X-Request-Id"))
	})

	t.Run("BodyStillReadableByHandler", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		var bound map[string]any
		router := gin.New()
		router.Use(requestid.New())
		router.Use(RequestLoggerMiddleware(logger))
		router.POST("/test", func(c *gin.Context) {
			require.NoError(t, c.ShouldBindJSON(&bound))
			c.JSON(http.StatusOK, gin.H{})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"userId": 7}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(7), bound["userId"])
	})

	t.Run("FailedRecordOnPanic", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		router := gin.New()
		router.Use(requestid.New())
		router.Use(RequestLoggerMiddleware(logger))
		router.GET("/panic", func(c *gin.Context) {
			panic("boom")
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/panic", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"detail": "INTERNAL_ERROR"}`, w.Body.String())
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

		logs := buf.String()
		assert.Contains(t, logs, "request.failed")
		assert.Contains(t, logs, "boom")
		assert.NotContains(t, logs, "request.completed")
	})

	t.Run("CorrelationIDReachesRequestContext", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		var seen string
		router := gin.New()
		router.Use(requestid.New())
		router.Use(RequestLoggerMiddleware(logger))
		router.GET("/test", func(c *gin.Context) {
			seen = httputil.RequestID(c.Request.Context())
			c.JSON(http.StatusOK, gin.H{})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, seen)
		assert.Equal(t, w.Header().Get("X-Request-Id"), seen)
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokenService := authservice.NewTokenService("test-secret", "terminal-api", "terminals", time.Hour)

	// Handlers never run: the auth middleware aborts first, so nil use cases
	// are safe here.
	server := NewServer(nil, "localhost", 8080, logger, Options{
		TokenService: tokenService,
		ClockHandler: clockhttp.NewClockHandler(nil, logger),
		UserHandler:  userhttp.NewUserHandler(nil, logger),
	})

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/clock-in"},
		{http.MethodPost, "/clock-out"},
		{http.MethodGet, "/users/EMP-042"},
	} {
		t.Run(route.method+"_"+route.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(route.method, route.path, nil)
			server.GetHandler().ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"detail": "UNAUTHORIZED"}`, w.Body.String())
		})
	}
}

func TestMetricsServer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	server := NewMetricsServer("localhost", 9090, logger, nil)
	require.NotNil(t, server)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	server.GetHandler().ServeHTTP(w, req)

	// No provider registered, so no route.
	assert.Equal(t, http.StatusNotFound, w.Code)
}
