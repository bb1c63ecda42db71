package usecase

import (
	"context"
	"time"

	"github.com/reybeld94/terminal-api/internal/clock/domain"
	"github.com/reybeld94/terminal-api/internal/database"
)

// clockUseCase coordinates a clock operation inside a single database session:
// procedure call, optional lookup, then one commit. Any failure rolls the
// whole session back.
type clockUseCase struct {
	gateway     ProcedureGateway
	collections CollectionRepository
	sessions    database.SessionManager
	now         func() time.Time
}

// NewClockUseCase creates a ClockUseCase with the given dependencies.
func NewClockUseCase(
	gateway ProcedureGateway,
	collections CollectionRepository,
	sessions database.SessionManager,
) ClockUseCase {
	return &clockUseCase{
		gateway:     gateway,
		collections: collections,
		sessions:    sessions,
		now:         time.Now,
	}
}

// ClockIn records a clock-in event and resolves the collection row the
// procedure opened. The session is committed only after both the procedure
// call and the lookup succeed.
func (u *clockUseCase) ClockIn(
	ctx context.Context,
	input *domain.ClockInInput,
) (*domain.ClockResult, error) {
	deviceDate := domain.NormalizeDeviceTime(input.DeviceDate, u.now())

	params := []domain.ProcedureParam{
		{Name: "workOrderAssemblyId", Value: input.WorkOrderAssemblyID},
		{Name: "userId", Value: input.UserID},
		{Name: "divisionFK", Value: input.DivisionFK},
		{Name: "deviceDate", Value: domain.FormatProcedureTime(deviceDate)},
	}

	var result domain.ClockResult
	err := u.sessions.WithSession(ctx, func(ctx context.Context) error {
		status, err := u.gateway.Call(ctx, domain.ClockInProcedure, params)
		if err != nil {
			return err
		}

		collectionID, err := u.collections.LatestCollectionID(
			ctx, input.UserID, input.WorkOrderAssemblyID)
		if err != nil {
			return err
		}

		result = domain.ClockResult{
			Status:                status,
			WorkOrderCollectionID: collectionID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ClockOut records a clock-out event against an open collection row.
func (u *clockUseCase) ClockOut(
	ctx context.Context,
	input *domain.ClockOutInput,
) (*domain.ClockResult, error) {
	deviceTime := domain.NormalizeDeviceTime(input.DeviceTime, u.now())

	params := []domain.ProcedureParam{
		{Name: "workOrderCollectionId", Value: input.WorkOrderCollectionID},
		{Name: "quantity", Value: input.Quantity},
		{Name: "quantityScrapped", Value: input.QuantityScrapped},
		{Name: "scrapReasonPK", Value: input.ScrapReasonPK},
		{Name: "complete", Value: domain.BoolToInt(input.Complete)},
		{Name: "comment", Value: nullableString(input.Comment)},
		{Name: "deviceTime", Value: domain.FormatProcedureTime(deviceTime)},
		{Name: "divisionFK", Value: input.DivisionFK},
	}

	var result domain.ClockResult
	err := u.sessions.WithSession(ctx, func(ctx context.Context) error {
		status, err := u.gateway.Call(ctx, domain.ClockOutProcedure, params)
		if err != nil {
			return err
		}

		result = domain.ClockResult{Status: status}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// nullableString maps an absent comment to SQL NULL instead of an empty string.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
