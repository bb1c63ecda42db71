// Package repository provides MySQL access to user and labor-status rows.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/reybeld94/terminal-api/internal/database"
	apperrors "github.com/reybeld94/terminal-api/internal/errors"
	"github.com/reybeld94/terminal-api/internal/httputil"
	"github.com/reybeld94/terminal-api/internal/user/domain"
)

const userByCodeQuery = "SELECT UserPK, FirstName, LastName FROM `User` WHERE Code = ?"

// activeWorkOrderQuery finds the single open collection for an employee. A
// collection is open while TimeOff is unset. The metadata joins are outer
// joins so a collection with missing work-order or operation rows still
// reports its core fields.
const activeWorkOrderQuery = `SELECT
    wc.WorkOrderCollectionPK,
    wc.WorkOrderNumber,
    wc.WorkOrderAssemblyNumber,
    wc.TimeOn,
    wo.PartNumber,
    op.Code AS OperationCode,
    op.Name AS OperationName
FROM WorkOrderCollection AS wc
LEFT JOIN WorkOrder AS wo
       ON wo.WorkOrderNumber = wc.WorkOrderNumber
LEFT JOIN WorkOrderAssembly AS wa
       ON wa.WorkOrderFK = wo.WorkOrderPK
      AND wa.SequenceNumber = wc.WorkOrderAssemblyNumber
LEFT JOIN Operation AS op
       ON op.OperationPK = wa.OperationFK
WHERE wc.EmployeeFK = ?
  AND wc.TimeOff IS NULL
  AND wc.TimeOn IS NOT NULL
ORDER BY wc.TimeOn DESC
LIMIT 1`

// MySQLUserRepository reads user rows and their open work-order collections.
type MySQLUserRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewMySQLUserRepository creates a user repository bound to the given database.
func NewMySQLUserRepository(db *sql.DB, logger *slog.Logger) *MySQLUserRepository {
	return &MySQLUserRepository{db: db, logger: logger}
}

// UserByCode looks up a user by their badge code. Returns ErrNotFound when no
// user carries the code.
func (r *MySQLUserRepository) UserByCode(ctx context.Context, code string) (*domain.User, error) {
	r.logger.Info("user.lookup",
		slog.String("request_id", httputil.RequestID(ctx)),
		slog.String("code", code),
	)

	querier := database.GetTx(ctx, r.db)

	var (
		user      domain.User
		firstName sql.NullString
		lastName  sql.NullString
	)
	err := querier.QueryRowContext(ctx, userByCodeQuery, code).
		Scan(&user.UserPK, &firstName, &lastName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Wrapf(apperrors.ErrNotFound, "user with code %q not found", code)
	}
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrDatabase, "user lookup failed: %v", err)
	}

	user.FirstName = firstName.String
	user.LastName = lastName.String

	r.logger.Info("user.lookup.result",
		slog.String("request_id", httputil.RequestID(ctx)),
		slog.Int64("user_pk", user.UserPK),
	)

	return &user, nil
}

// ActiveWorkOrder returns the open work-order collection for the user, or nil
// when the user is not clocked in anywhere.
func (r *MySQLUserRepository) ActiveWorkOrder(ctx context.Context, userID int64) (*domain.ActiveWorkOrder, error) {
	querier := database.GetTx(ctx, r.db)

	var (
		workOrder     domain.ActiveWorkOrder
		partNumber    sql.NullString
		operationCode sql.NullString
		operationName sql.NullString
	)
	err := querier.QueryRowContext(ctx, activeWorkOrderQuery, userID).Scan(
		&workOrder.WorkOrderCollectionID,
		&workOrder.WorkOrderNumber,
		&workOrder.WorkOrderAssemblyNumber,
		&workOrder.ClockInTime,
		&partNumber,
		&operationCode,
		&operationName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrDatabase, "active work order lookup failed: %v", err)
	}

	if partNumber.Valid {
		workOrder.PartNumber = &partNumber.String
	}
	if operationCode.Valid {
		workOrder.OperationCode = &operationCode.String
	}
	if operationName.Valid {
		workOrder.OperationName = &operationName.String
	}

	return &workOrder, nil
}
