// Package usecase implements the clock-in and clock-out operations.
package usecase

import (
	"context"

	"github.com/reybeld94/terminal-api/internal/clock/domain"
)

// ProcedureGateway invokes a stored procedure and returns its status value.
type ProcedureGateway interface {
	Call(ctx context.Context, name string, params []domain.ProcedureParam) (string, error)
}

// CollectionRepository reads work-order collection rows.
type CollectionRepository interface {
	// LatestCollectionID returns the newest collection primary key for the
	// employee and assembly, or nil when no matching row exists.
	LatestCollectionID(ctx context.Context, userID, workOrderAssemblyID int64) (*int64, error)
}

// ClockUseCase records clock-in and clock-out events against work orders.
type ClockUseCase interface {
	ClockIn(ctx context.Context, input *domain.ClockInInput) (*domain.ClockResult, error)
	ClockOut(ctx context.Context, input *domain.ClockOutInput) (*domain.ClockResult, error)
}
