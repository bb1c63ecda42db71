// Package http provides HTTP handlers for user status lookups.
package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/reybeld94/terminal-api/internal/errors"
	"github.com/reybeld94/terminal-api/internal/httputil"
	"github.com/reybeld94/terminal-api/internal/user/http/dto"
	"github.com/reybeld94/terminal-api/internal/user/usecase"
)

// UserHandler handles HTTP requests for user status lookups.
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(userUseCase usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// StatusHandler looks up a user by badge code and reports their current
// labor status.
// GET /users/:employeeId - Requires bearer authentication.
// Returns 200 OK with the user and their open collection, if any.
func (h *UserHandler) StatusHandler(c *gin.Context) {
	employeeCode := strings.TrimSpace(c.Param("employeeId"))
	if employeeCode == "" {
		httputil.HandleError(c, apperrors.Wrap(apperrors.ErrInvalidInput, "employeeId: cannot be blank"), h.logger)
		return
	}

	status, err := h.userUseCase.Status(c.Request.Context(), employeeCode)
	if err != nil {
		httputil.HandleError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.FromUserStatus(status))
}
