// Package http provides HTTP handlers for clock-in and clock-out operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reybeld94/terminal-api/internal/clock/http/dto"
	"github.com/reybeld94/terminal-api/internal/clock/usecase"
	"github.com/reybeld94/terminal-api/internal/httputil"
)

// ClockHandler handles HTTP requests for recording labor events.
type ClockHandler struct {
	clockUseCase usecase.ClockUseCase
	logger       *slog.Logger
}

// NewClockHandler creates a new clock handler with required dependencies.
func NewClockHandler(clockUseCase usecase.ClockUseCase, logger *slog.Logger) *ClockHandler {
	return &ClockHandler{
		clockUseCase: clockUseCase,
		logger:       logger,
	}
}

// ClockInHandler records a clock-in against a work-order assembly.
// POST /clock-in - Requires bearer authentication.
// Returns 200 OK with the procedure status and located collection id.
func (h *ClockHandler) ClockInHandler(c *gin.Context) {
	var req dto.ClockInRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	result, err := h.clockUseCase.ClockIn(c.Request.Context(), dto.ToClockInInput(req))
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.FromClockInResult(result))
}

// ClockOutHandler records a clock-out against an open work-order collection.
// POST /clock-out - Requires bearer authentication.
// Returns 200 OK with the procedure status.
func (h *ClockHandler) ClockOutHandler(c *gin.Context) {
	var req dto.ClockOutRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequest(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	result, err := h.clockUseCase.ClockOut(c.Request.Context(), dto.ToClockOutInput(req))
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.FromClockOutResult(result))
}
