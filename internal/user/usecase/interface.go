// Package usecase implements the user status lookup.
package usecase

import (
	"context"

	"github.com/reybeld94/terminal-api/internal/user/domain"
)

// UserRepository reads user and open-collection rows.
type UserRepository interface {
	// UserByCode returns the user carrying the badge code, or ErrNotFound.
	UserByCode(ctx context.Context, code string) (*domain.User, error)
	// ActiveWorkOrder returns the user's open collection, or nil when the
	// user is not clocked in.
	ActiveWorkOrder(ctx context.Context, userID int64) (*domain.ActiveWorkOrder, error)
}

// UserUseCase resolves a user's current labor status.
type UserUseCase interface {
	Status(ctx context.Context, employeeCode string) (*domain.UserStatus, error)
}
