package usecase

import (
	"context"

	"github.com/reybeld94/terminal-api/internal/database"
	"github.com/reybeld94/terminal-api/internal/user/domain"
)

type userUseCase struct {
	users    UserRepository
	sessions database.SessionManager
}

// NewUserUseCase creates a user use case with required dependencies.
func NewUserUseCase(users UserRepository, sessions database.SessionManager) UserUseCase {
	return &userUseCase{
		users:    users,
		sessions: sessions,
	}
}

// Status resolves the user by badge code and, when found, their open
// work-order collection. Both reads share one request-scoped session. A
// missing user stops the lookup before the collection query runs.
func (u *userUseCase) Status(ctx context.Context, employeeCode string) (*domain.UserStatus, error) {
	var status *domain.UserStatus

	err := u.sessions.WithSession(ctx, func(ctx context.Context) error {
		user, err := u.users.UserByCode(ctx, employeeCode)
		if err != nil {
			return err
		}

		workOrder, err := u.users.ActiveWorkOrder(ctx, user.UserPK)
		if err != nil {
			return err
		}

		status = &domain.UserStatus{
			User:            *user,
			ActiveWorkOrder: workOrder,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return status, nil
}
