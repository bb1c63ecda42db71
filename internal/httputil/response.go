// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	apperrors "github.com/reybeld94/terminal-api/internal/errors"
)

// Error detail codes returned to clients. Internal error text never reaches
// the response body; these opaque codes are the entire client-facing surface.
const (
	DetailUnauthorized   = "UNAUTHORIZED"
	DetailInvalidPayload = "INVALID_PAYLOAD"
	DetailUserNotFound   = "USER_NOT_FOUND"
	DetailDBError        = "DB_ERROR"
	DetailRateLimited    = "RATE_LIMITED"
	DetailInternalError  = "INTERNAL_ERROR"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Detail string   `json:"detail"`
	Errors []string `json:"errors,omitempty"`
}

// HandleError maps domain errors to HTTP status codes and writes a JSON
// response. Full error details are logged server-side; the client only ever
// sees the opaque detail code.
func HandleError(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errorResponse = ErrorResponse{Detail: DetailUnauthorized}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		errorResponse = ErrorResponse{
			Detail: DetailInvalidPayload,
			Errors: fieldErrors(err),
		}

	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = ErrorResponse{Detail: DetailUserNotFound}

	case apperrors.Is(err, apperrors.ErrDatabase),
		apperrors.Is(err, apperrors.ErrEmptyProcedureStatus):
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{Detail: DetailDBError}

	default:
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{Detail: DetailInternalError}
	}

	if logger != nil {
		logger.Error("request failed",
			slog.String("request_id", RequestID(c.Request.Context())),
			slog.Int("status_code", statusCode),
			slog.String("detail", errorResponse.Detail),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequest writes a 400 response for payloads that fail to decode at all.
func HandleBadRequest(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request",
			slog.String("request_id", RequestID(c.Request.Context())),
			slog.Any("error", err),
		)
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Detail: DetailInvalidPayload,
		Errors: []string{err.Error()},
	})
}

// fieldErrors flattens jellydator validation errors into sorted
// "field: message" strings. Non-structured validation failures produce a
// single entry.
func fieldErrors(err error) []string {
	var verrs validation.Errors
	if !apperrors.As(err, &verrs) {
		return []string{err.Error()}
	}

	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, verrs[field].Error()))
	}
	return msgs
}
