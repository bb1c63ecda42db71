package http

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/reybeld94/terminal-api/internal/httputil"
)

const (
	// maxLoggedBodyBytes bounds how much of a request body reaches the log.
	maxLoggedBodyBytes = 2048
	// maxErrorSummaryBytes bounds panic summaries in failure records.
	maxErrorSummaryBytes = 1024
)

// RequestLoggerMiddleware emits a request.received record on entry and a
// request.completed or request.failed record on exit. It also copies the
// correlation id into the request context so repositories and the procedure
// gateway can tag their own records, and recovers panics into an opaque 500
// response. The X-Request-ID header is set before the handler runs, so it
// survives every failure path.
func RequestLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := requestid.Get(c)

		ctx := httputil.WithRequestID(c.Request.Context(), rid)
		c.Request = c.Request.WithContext(ctx)

		logger.Info("request.received",
			slog.String("request_id", rid),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("query", c.Request.URL.RawQuery),
			slog.String("body", readBodyForLog(c)),
		)

		defer func() {
			latency := time.Since(start).Milliseconds()

			if r := recover(); r != nil {
				logger.Error("request.failed",
					slog.String("request_id", rid),
					slog.Int("status", http.StatusInternalServerError),
					slog.Int64("latency_ms", latency),
					slog.String("error", truncate(fmt.Sprintf("%v", r), maxErrorSummaryBytes)),
					slog.String("stack", truncate(string(debug.Stack()), maxErrorSummaryBytes)),
				)
				c.AbortWithStatusJSON(
					http.StatusInternalServerError,
					httputil.ErrorResponse{Detail: httputil.DetailInternalError},
				)
				return
			}

			logger.Info("request.completed",
				slog.String("request_id", rid),
				slog.Int("status", c.Writer.Status()),
				slog.Int64("latency_ms", latency),
			)
		}()

		c.Next()
	}
}

// readBodyForLog reads a bounded prefix of the request body for logging and
// restores the body so handlers can still bind it.
func readBodyForLog(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLoggedBodyBytes+1))
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), c.Request.Body))

	if len(body) > maxLoggedBodyBytes {
		body = body[:maxLoggedBodyBytes]
	}
	if !utf8.Valid(body) {
		return "<binary>"
	}
	return string(body)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
