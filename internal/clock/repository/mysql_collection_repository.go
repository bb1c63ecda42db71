package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/reybeld94/terminal-api/internal/database"
	apperrors "github.com/reybeld94/terminal-api/internal/errors"
	"github.com/reybeld94/terminal-api/internal/httputil"
)

// latestCollectionQuery finds the collection row the clock-in procedure just
// opened: the newest one linking this employee to the assembly. The highest
// primary key is the most recent row.
const latestCollectionQuery = `SELECT wc.WorkOrderCollectionPK
FROM WorkOrderCollection AS wc
INNER JOIN WorkOrderAssembly AS wa
        ON wa.WorkOrderAssemblyPK = ?
       AND wa.SequenceNumber = wc.WorkOrderAssemblyNumber
WHERE wc.EmployeeFK = ?
ORDER BY wc.WorkOrderCollectionPK DESC
LIMIT 1`

// MySQLCollectionRepository reads work-order collection rows.
type MySQLCollectionRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewMySQLCollectionRepository creates a collection repository bound to the given database.
func NewMySQLCollectionRepository(db *sql.DB, logger *slog.Logger) *MySQLCollectionRepository {
	return &MySQLCollectionRepository{db: db, logger: logger}
}

// LatestCollectionID returns the most recent collection primary key for the
// employee and work-order assembly, or nil when no matching row exists.
func (r *MySQLCollectionRepository) LatestCollectionID(
	ctx context.Context,
	userID int64,
	workOrderAssemblyID int64,
) (*int64, error) {
	r.logger.Info("collection.lookup",
		slog.String("request_id", httputil.RequestID(ctx)),
		slog.Int64("user_id", userID),
		slog.Int64("work_order_assembly_id", workOrderAssemblyID),
	)

	querier := database.GetTx(ctx, r.db)

	var collectionID int64
	err := querier.QueryRowContext(ctx, latestCollectionQuery, workOrderAssemblyID, userID).
		Scan(&collectionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrDatabase, "collection lookup failed: %v", err)
	}

	return &collectionID, nil
}
